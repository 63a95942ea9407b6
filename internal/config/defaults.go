package config

const (
	// DefaultAI302TTSModels is restored when the persisted list lost its azure entry.
	DefaultAI302TTSModels = "tts-1,tts-1-hd,azure"
	// RepairedGeminiModels is restored when the persisted list has no gemini model.
	RepairedGeminiModels = "gemini-pro,gemini-1.5-pro,gemini-1.5-flash"

	openAITTSRoles = "alloy,echo,fable,onyx,nova,shimmer"
)

// DefaultSettings returns the built-in cfg.json document.
func DefaultSettings() Settings {
	return Settings{
		AI302Models:       "gpt-4o-mini,gpt-4o,gpt-4,gpt-4-turbo-preview,ernie-4.0-8k,qwen-max,glm-4,moonshot-v1-8k,yi-large,deepseek-chat,doubao-pro-128k,generalv3.5,gemini-1.5-pro,baichuan2-53b,sensechat-5,llama3-70b-8192,qwen2-72b-instruct",
		AI302TTSModels:    DefaultAI302TTSModels,
		Lang:              "",
		CRF:               13,
		CUDAQP:            false,
		Preset:            "slow",
		FFmpegCmd:         "",
		VideoCodec:        264,
		ChatGPTModel:      "gpt-4o-mini,gpt-4o,gpt-4,gpt-4-turbo,gpt-4-turbo-preview,qwen,moonshot-v1-8k,deepseek-chat",
		AzureModel:        "gpt-4o,gpt-4,gpt-35-turbo",
		LocalLLMModel:     "qwen:7b,qwen:1.8b-chat-v1.5-q2_k,moonshot-v1-8k,deepseek-chat",
		ZijiehuoshanModel: "",
		ModelList:         "tiny,tiny.en,base,base.en,small,small.en,medium,medium.en,large-v1,large-v2,large-v3,distil-whisper-small.en,distil-whisper-medium.en,distil-whisper-large-v2,distil-whisper-large-v3",
		GeminiModel:       "gemini-1.5-pro,gemini-pro,gemini-1.5-flash",
		ChatTTSVoice:      "11,12,16,2222,4444,6653,7869,9999,5,13,14,1111,3333,4099,5099,5555,8888,6666,7777",

		AudioRate:        3,
		VideoRate:        20,
		RemoveSilence:    false,
		RemoveSRTSilence: false,
		RemoveWhiteMS:    0,
		ForceEditSRT:     true,

		VAD:                true,
		OverallSilence:     250,
		OverallMaxSecs:     6,
		OverallThreshold:   0.5,
		OverallSpeechPadMS: 100,
		VoiceSilence:       250,
		IntervalSplit:      10,

		TransThread:     15,
		Retries:         2,
		TranslationWait: 0.1,
		DubbingThread:   5,
		CountdownSec:    15,
		BackaudioVolume: 0.8,
		SeparateSec:     600,
		LoopBackaudio:   true,

		CUDAComType:             "float32",
		InitialPromptZH:         "add punctuation after end of each line. 就比如说，我要先去吃饭。segment at end of each  sentence.",
		WhisperThreads:          4,
		WhisperWorker:           1,
		BeamSize:                5,
		BestOf:                  5,
		Temperature:             0,
		ConditionOnPreviousText: false,

		FontSize:        16,
		FontName:        "黑体",
		FontColor:       "&hffffff",
		FontBorderColor: "&h000000",
		SubtitleBottom:  10,
		CJKLen:          20,
		OtherLen:        54,
		ZHHantS:         true,
		AzureLines:      150,
	}
}

// ParamsOptions carries the inputs the params defaults depend on.
type ParamsOptions struct {
	// Locale is the resolved UI language code.
	Locale string
	// HomeDir seeds last_opendir.
	HomeDir string

	// The head entries of the derived model pick-lists.
	ChatGPTModel      string
	AzureModel        string
	LocalLLMModel     string
	ZijiehuoshanModel string
}

// DefaultParams returns the built-in params.json document for the given options.
func DefaultParams(opts ParamsOptions) Params {
	zh := opts.Locale == "zh"

	chatgptTemplate := ""
	azureTemplate := templateEN
	geminiTemplate := templateEN
	localllmTemplate := templateEN
	if zh {
		chatgptTemplate = templateZH
		azureTemplate = templateZH
		geminiTemplate = templateZH
		localllmTemplate = ""
	}

	return Params{
		LastOpenDir:      opts.HomeDir,
		SourceLanguage:   "en",
		TargetLanguage:   "zh-cn",
		SubtitleLanguage: "chi",
		TranslateType:    "Google",
		SubtitleType:     0,
		ListenText:       defaultListenText(),

		TTSType: "edgeTTS",
		TTSTypeList: []string{
			"edgeTTS", "CosyVoice", "ChatTTS", "302.ai", "FishTTS", "AzureTTS", "GPT-SoVITS",
			"clone-voice", "openaiTTS", "elevenlabsTTS", "gtts", "TTS-API",
		},
		WhisperType:  "all",
		WhisperModel: "tiny",
		ModelType:    "faster",
		VoiceRole:    "No",
		VoiceRate:    "0",
		AppendVideo:  true,

		ChatGPTModel:    opts.ChatGPTModel,
		ChatGPTTemplate: chatgptTemplate,

		AzureVersion:  "2024-06-01",
		AzureModel:    opts.AzureModel,
		AzureTemplate: azureTemplate,

		GeminiModel:    "gemini-1.5-pro",
		GeminiTemplate: geminiTemplate,

		LocalLLMModel:    opts.LocalLLMModel,
		LocalLLMTemplate: localllmTemplate,

		ZijiehuoshanModel:    opts.ZijiehuoshanModel,
		ZijiehuoshanTemplate: templateZH,

		AI302Template: templateAI302,

		ElevenlabsTTSRole: []string{},
		OpenAITTSRole:     openAITTSRoles,
		CloneVoiceList:    []string{"clone"},

		TTSAPIExtra:    "pyvideotrans",
		AI302TTSRole:   openAITTSRoles,
		GPTSoVITSExtra: "pyvideotrans",

		AppMode: "biaozhun",
	}
}

func defaultListenText() map[string]string {
	return map[string]string{
		"zh-cn": "你好啊，我亲爱的朋友，希望你的每一天都是美好愉快的！",
		"zh-tw": "你好啊，我親愛的朋友，希望你的每一天都是美好愉快的！",
		"en":    "Hello, my dear friend. I hope your every day is beautiful and enjoyable!",
		"fr":    "Bonjour mon cher ami. J'espère que votre quotidien est beau et agréable !",
		"de":    "Hallo mein lieber Freund. Ich hoffe, dass Ihr Tag schön und angenehm ist!",
		"ja":    "こんにちは私の親愛なる友人。 あなたの毎日が美しく楽しいものでありますように！",
		"ko":    "안녕, 내 사랑하는 친구. 당신의 매일이 아름답고 즐겁기를 바랍니다!",
		"ru":    "Привет, мой дорогой друг. Желаю, чтобы каждый твой день был прекрасен и приятен!",
		"es":    "Hola mi querido amigo. ¡Espero que cada día sea hermoso y agradable!",
		"th":    "สวัสดีเพื่อนรัก. ฉันหวังว่าทุกวันของคุณจะสวยงามและสนุกสนาน!",
		"it":    "Ciao caro amico mio. Spero che ogni tuo giorno sia bello e divertente!",
		"pt":    "Olá meu querido amigo. Espero que todos os seus dias sejam lindos e agradáveis!",
		"vi":    "Xin chào người bạn thân yêu của tôi. Tôi hy vọng mỗi ngày của bạn đều đẹp và thú vị!",
		"ar":    "مرحبا صديقي العزيز. أتمنى أن يكون كل يوم جميلاً وممتعًا!",
		"tr":    "Merhaba sevgili arkadaşım. Umarım her gününüz güzel ve keyifli geçer!",
		"hi":    "नमस्ते मेरे प्यारे दोस्त। मुझे आशा है कि आपका हर दिन सुंदर और आनंददायक हो!!",
		"hu":    "Helló kedves barátom. Remélem minden napod szép és kellemes!",
		"uk":    "Привіт, мій дорогий друже, сподіваюся, ти щодня прекрасна!",
		"id":    "Halo, temanku, semoga kamu cantik setiap hari!",
		"ms":    "Helo, sahabat saya, saya harap anda cantik setiap hari!",
		"kk":    "Сәлеметсіз бе, менің қымбатты досым, сендер күн сайын әдемісің деп үміттенемін!",
		"cs":    "Ahoj, můj drahý příteli, doufám, že jsi každý den krásná!",
		"pl":    "Witam, mój drogi przyjacielu, mam nadzieję, że jesteś piękna każdego dnia!",
		"nl":    "Hallo mijn lieve vriend, ik hoop dat elke dag goed en fijn voor je is!!",
	}
}

// Package config loads, migrates, and persists the vtrans settings and params documents.
package config

import "encoding/json"

// Settings is the typed cfg.json document of coarse tunables.
//
// The json tag of each field is its on-disk key.
type Settings struct {
	AI302Models       string `json:"ai302_models"`
	AI302TTSModels    string `json:"ai302tts_models"`
	Lang              string `json:"lang"`
	CRF               int    `json:"crf"`
	CUDAQP            bool   `json:"cuda_qp"`
	Preset            string `json:"preset"`
	FFmpegCmd         string `json:"ffmpeg_cmd"`
	VideoCodec        int    `json:"video_codec"`
	ChatGPTModel      string `json:"chatgpt_model"`
	AzureModel        string `json:"azure_model"`
	LocalLLMModel     string `json:"localllm_model"`
	ZijiehuoshanModel string `json:"zijiehuoshan_model"`
	ModelList         string `json:"model_list"`
	GeminiModel       string `json:"gemini_model"`
	ChatTTSVoice      string `json:"chattts_voice"`

	AudioRate        int  `json:"audio_rate"`
	VideoRate        int  `json:"video_rate"`
	RemoveSilence    bool `json:"remove_silence"`
	RemoveSRTSilence bool `json:"remove_srt_silence"`
	RemoveWhiteMS    int  `json:"remove_white_ms"`
	ForceEditSRT     bool `json:"force_edit_srt"`

	VAD                bool    `json:"vad"`
	OverallSilence     int     `json:"overall_silence"`
	OverallMaxSecs     int     `json:"overall_maxsecs"`
	OverallThreshold   float64 `json:"overall_threshold"`
	OverallSpeechPadMS int     `json:"overall_speech_pad_ms"`
	VoiceSilence       int     `json:"voice_silence"`
	IntervalSplit      int     `json:"interval_split"`

	TransThread     int     `json:"trans_thread"`
	Retries         int     `json:"retries"`
	TranslationWait float64 `json:"translation_wait"`
	DubbingThread   int     `json:"dubbing_thread"`
	CountdownSec    int     `json:"countdown_sec"`
	BackaudioVolume float64 `json:"backaudio_volume"`
	SeparateSec     int     `json:"separate_sec"`
	LoopBackaudio   bool    `json:"loop_backaudio"`

	CUDAComType             string  `json:"cuda_com_type"`
	InitialPromptZH         string  `json:"initial_prompt_zh"`
	WhisperThreads          int     `json:"whisper_threads"`
	WhisperWorker           int     `json:"whisper_worker"`
	BeamSize                int     `json:"beam_size"`
	BestOf                  int     `json:"best_of"`
	Temperature             float64 `json:"temperature"`
	ConditionOnPreviousText bool    `json:"condition_on_previous_text"`

	FontSize        int    `json:"fontsize"`
	FontName        string `json:"fontname"`
	FontColor       string `json:"fontcolor"`
	FontBorderColor string `json:"fontbordercolor"`
	SubtitleBottom  int    `json:"subtitle_bottom"`
	CJKLen          int    `json:"cjk_len"`
	OtherLen        int    `json:"other_len"`
	ZHHantS         bool   `json:"zh_hant_s"`
	AzureLines      int    `json:"azure_lines"`

	// Extra carries on-disk keys this build does not know about.
	Extra map[string]json.RawMessage `json:"-"`
}

// Params is the typed params.json document of provider credentials,
// endpoints, prompt templates, and task choices.
type Params struct {
	LastOpenDir      string `json:"last_opendir"`
	CUDA             bool   `json:"cuda"`
	OnlyVideo        bool   `json:"only_video"`
	IsSeparate       bool   `json:"is_separate"`
	TargetDir        string `json:"target_dir"`
	SourceLanguage   string `json:"source_language"`
	TargetLanguage   string `json:"target_language"`
	SubtitleLanguage string `json:"subtitle_language"`
	TranslateType    string `json:"translate_type"`
	SubtitleType     int    `json:"subtitle_type"`

	// ListenText maps a language code to its voice preview sentence.
	// It is stored on disk as flat listen_text_<code> keys.
	ListenText map[string]string `json:"-"`

	TTSType       string   `json:"tts_type"`
	TTSTypeList   []string `json:"tts_type_list"`
	WhisperType   string   `json:"whisper_type"`
	WhisperModel  string   `json:"whisper_model"`
	ModelType     string   `json:"model_type"`
	VoiceAutorate bool     `json:"voice_autorate"`
	VoiceRole     string   `json:"voice_role"`
	VoiceRate     string   `json:"voice_rate"`
	VideoAutorate bool     `json:"video_autorate"`
	AppendVideo   bool     `json:"append_video"`

	DeepLAuthKey     string `json:"deepl_authkey"`
	DeepLAPI         string `json:"deepl_api"`
	DeepLXAddress    string `json:"deeplx_address"`
	OttAddress       string `json:"ott_address"`
	TencentSecretID  string `json:"tencent_SecretId"`
	TencentSecretKey string `json:"tencent_SecretKey"`
	BaiduAppID       string `json:"baidu_appid"`
	BaiduMiyue       string `json:"baidu_miyue"`

	ChatGPTAPI      string `json:"chatgpt_api"`
	ChatGPTKey      string `json:"chatgpt_key"`
	ChatGPTModel    string `json:"chatgpt_model"`
	ChatGPTTemplate string `json:"chatgpt_template"`

	AzureAPI      string `json:"azure_api"`
	AzureKey      string `json:"azure_key"`
	AzureVersion  string `json:"azure_version"`
	AzureModel    string `json:"azure_model"`
	AzureTemplate string `json:"azure_template"`

	GeminiKey      string `json:"gemini_key"`
	GeminiModel    string `json:"gemini_model"`
	GeminiTemplate string `json:"gemini_template"`

	LocalLLMAPI      string `json:"localllm_api"`
	LocalLLMKey      string `json:"localllm_key"`
	LocalLLMModel    string `json:"localllm_model"`
	LocalLLMTemplate string `json:"localllm_template"`

	ZijiehuoshanKey      string `json:"zijiehuoshan_key"`
	ZijiehuoshanModel    string `json:"zijiehuoshan_model"`
	ZijiehuoshanTemplate string `json:"zijiehuoshan_template"`

	AI302Key      string `json:"ai302_key"`
	AI302Model    string `json:"ai302_model"`
	AI302Template string `json:"ai302_template"`

	TransAPIURL string `json:"trans_api_url"`
	TransSecret string `json:"trans_secret"`

	CoquiTTSRole string `json:"coquitts_role"`
	CoquiTTSKey  string `json:"coquitts_key"`

	ElevenlabsTTSRole []string `json:"elevenlabstts_role"`
	ElevenlabsTTSKey  string   `json:"elevenlabstts_key"`

	OpenAITTSRole string `json:"openaitts_role"`

	CloneAPI       string   `json:"clone_api"`
	CloneVoiceList []string `json:"clone_voicelist"`

	ZHRecognAPI string `json:"zh_recogn_api"`

	TTSAPIURL       string `json:"ttsapi_url"`
	TTSAPIVoiceRole string `json:"ttsapi_voice_role"`
	TTSAPIExtra     string `json:"ttsapi_extra"`

	AI302TTSKey   string `json:"ai302tts_key"`
	AI302TTSModel string `json:"ai302tts_model"`
	AI302TTSRole  string `json:"ai302tts_role"`

	AzureSpeechRegion string `json:"azure_speech_region"`
	AzureSpeechKey    string `json:"azure_speech_key"`

	GPTSoVITSURL   string `json:"gptsovits_url"`
	GPTSoVITSRole  string `json:"gptsovits_role"`
	GPTSoVITSExtra string `json:"gptsovits_extra"`

	CosyVoiceURL  string `json:"cosyvoice_url"`
	CosyVoiceRole string `json:"cosyvoice_role"`

	FishTTSURL  string `json:"fishtts_url"`
	FishTTSRole string `json:"fishtts_role"`

	DoubaoAppID  string `json:"doubao_appid"`
	DoubaoAccess string `json:"doubao_access"`

	ChatTTSAPI string `json:"chattts_api"`

	AppMode string `json:"app_mode"`
	Proxy   string `json:"proxy"`

	// Extra carries on-disk keys this build does not know about.
	Extra map[string]json.RawMessage `json:"-"`
}

// Warning is a non-fatal load message about one document key.
type Warning struct {
	Key     string
	Message string
}

func (w Warning) String() string {
	if w.Key == "" {
		return w.Message
	}
	return w.Key + ": " + w.Message
}

package doctor

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// checkGRPC waits for the channel to become ready, then asks the standard
// health service. Servers without a health service pass on readiness alone.
func checkGRPC(ctx context.Context, target string) Check {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return Check{Pass: false, Message: fmt.Sprintf("grpc client %q: %v", target, err)}
	}
	defer conn.Close()

	conn.Connect()
	if err := waitForReady(ctx, conn); err != nil {
		return Check{Pass: false, Message: fmt.Sprintf("grpc %s not ready: %v", target, err)}
	}

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if status.Code(err) == codes.Unimplemented {
		return Check{Pass: true, Message: fmt.Sprintf("grpc ready at %s (no health service)", target)}
	}
	if err != nil {
		return Check{Pass: false, Message: fmt.Sprintf("grpc health %s: %v", target, err)}
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return Check{Pass: false, Message: fmt.Sprintf("grpc health %s: %s", target, resp.GetStatus())}
	}
	return Check{Pass: true, Message: fmt.Sprintf("grpc serving at %s", target)}
}

// waitForReady blocks until gRPC connection enters Ready or fails.
func waitForReady(ctx context.Context, conn *grpc.ClientConn) error {
	for {
		state := conn.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.Shutdown:
			return errors.New("grpc connection entered shutdown state")
		}

		if !conn.WaitForStateChange(ctx, state) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("grpc readiness wait timed out in state %s", state.String())
		}
	}
}

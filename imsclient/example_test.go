package imsclient_test

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/adobe/aio-lib-core-auth/ims"
	"github.com/adobe/aio-lib-core-auth/imsclient"
)

const bufSize = 1024

var (
	bufListener = bufconn.Listen(bufSize)
	bufServer   = grpc.NewServer()
	bufOnce     sync.Once
)

func startBufServer() {
	bufOnce.Do(func() {
		go func() {
			_ = bufServer.Serve(bufListener)
		}()
	})
}

func dialBufConn(opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	startBufServer()

	dialOpts := []grpc.DialOption{
		grpc.WithContextDialer(func(c context.Context, _ string) (net.Conn, error) {
			select {
			case <-c.Done():
				return nil, c.Err()
			default:
			}
			return bufListener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}

	dialOpts = append(dialOpts, opts...)
	return grpc.NewClient("bufnet", dialOpts...)
}

// Example demonstrates binding a provider and wiring it into a gRPC client.
func Example() {
	client := imsclient.New()

	provider := client.Provider(map[string]any{
		"client_id":     "my-client",
		"client_secret": "my-secret",
		"org_id":        "my-org@AdobeOrg",
		"scopes":        []string{"openid"},
	}, ims.EnvironmentProd)

	conn, err := dialBufConn(
		grpc.WithUnaryInterceptor(provider.UnaryClientInterceptor()),
		grpc.WithStreamInterceptor(provider.StreamClientInterceptor()),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	fmt.Println("gRPC client configured with IMS authentication")
	// Output: gRPC client configured with IMS authentication
}

// ExampleNew demonstrates creating a client with options.
func ExampleNew() {
	client := imsclient.New(
		imsclient.WithDeploymentContext(ims.DeploymentContext{Namespace: "development-42"}),
	)

	_ = client // Use the client

	fmt.Println("client defaults to the stage environment")
	// Output: client defaults to the stage environment
}

// ExampleClient_GenerateAccessToken demonstrates the fail-fast validation path.
func ExampleClient_GenerateAccessToken() {
	client := imsclient.New()

	// Incomplete credentials never reach the network.
	_, err := client.GenerateAccessToken(context.Background(), map[string]any{
		"client_id": "my-client",
	}, "")
	if err != nil {
		fmt.Println(ims.CodeOf(err))
	}

	// Output: MISSING_PARAMETERS
}

// ExampleInvalidateCache demonstrates forcing the next lookup to miss.
func ExampleInvalidateCache() {
	imsclient.InvalidateCache()

	fmt.Println("cache cleared")
	// Output: cache cleared
}

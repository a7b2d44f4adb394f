package grpcserver

import (
	"context"
	"math"
	"net"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"rbkv/service"
)

func startServer(t *testing.T, opts service.Options) (*Client, *service.KVService) {
	t.Helper()
	return startServerWithMetrics(t, opts, nil)
}

func startServerWithMetrics(t *testing.T, opts service.Options, m *service.Metrics) (*Client, *service.KVService) {
	t.Helper()
	if opts.OutboxCapacity == 0 {
		opts.OutboxCapacity = 1024
	}
	log := zaptest.NewLogger(t)
	svc := service.New(opts, m, log)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor(log)))
	Register(srv, NewServer(svc, log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewClient(conn), svc
}

func TestPutGetDelete(t *testing.T) {
	c, _ := startServer(t, service.Options{})
	ctx := context.Background()

	rev, created, err := c.Put(ctx, "alpha", []byte{0, 1, 0xff})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rev)
	assert.True(t, created)

	rev, created, err = c.Put(ctx, "alpha", []byte("v2"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), rev)
	assert.False(t, created)

	v, err := c.Get(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), v)

	rev, deleted, err := c.Delete(ctx, "alpha")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, uint64(3), rev)

	_, deleted, err = c.Delete(ctx, "alpha")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = c.Get(ctx, "alpha")
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRangeAndLen(t *testing.T) {
	c, _ := startServer(t, service.Options{})
	ctx := context.Background()
	for _, k := range []string{"d", "a", "c", "b", "e"} {
		_, _, err := c.Put(ctx, k, []byte(k+k))
		require.NoError(t, err)
	}

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	got, err := c.Range(ctx, "b", "e", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].Key)
	assert.Equal(t, []byte("bb"), got[0].Value)
	assert.Equal(t, "d", got[2].Key)

	got, err = c.Range(ctx, "", "", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Key)
}

func TestErrorCodes(t *testing.T) {
	c, _ := startServer(t, service.Options{MaxEntries: 1, OutboxCapacity: 2})
	ctx := context.Background()

	_, _, err := c.Put(ctx, "", []byte("x"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, _, err = c.Put(ctx, "a", nil)
	require.NoError(t, err)
	_, _, err = c.Put(ctx, "b", nil)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	_, _, err = c.Put(ctx, "a", []byte("1"))
	require.NoError(t, err)
	_, _, err = c.Put(ctx, "a", []byte("2"))
	assert.Equal(t, codes.ResourceExhausted, status.Code(err), "outbox is full")

	_, err = c.Range(ctx, "", "", -1)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRangeScansWithoutCopying(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, _ := startServerWithMetrics(t, service.Options{MaxEntries: 5}, service.NewMetrics(reg))
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		_, _, err := c.Put(ctx, k, nil)
		require.NoError(t, err)
	}

	got, err := c.Range(ctx, "b", "", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[1].Key)

	// served by a bounded scan, not a snapshot of the whole store
	expected := `
# HELP rbkv_ops_total Total number of handled operations.
# TYPE rbkv_ops_total counter
rbkv_ops_total{op="put"} 5
rbkv_ops_total{op="range"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "rbkv_ops_total"))
}

func TestRangeLimitValidation(t *testing.T) {
	c, _ := startServer(t, service.Options{})
	ctx := context.Background()
	_, _, err := c.Put(ctx, "a", nil)
	require.NoError(t, err)

	for _, limit := range []float64{-1, 1.5, float64(math.MaxInt32) + 1, 1e300, math.NaN()} {
		_, err := NewServer(nil, nil).Range(ctx, &structpb.Struct{Fields: map[string]*structpb.Value{
			"limit": structpb.NewNumberValue(limit),
		}})
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "limit %v", limit)
	}

	got, err := c.Range(ctx, "", "", math.MaxInt32)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRawPutRejectsBadValue(t *testing.T) {
	s := NewServer(service.New(service.Options{OutboxCapacity: 4}, nil, nil), nil)
	_, err := s.Put(context.Background(), &structpb.Struct{Fields: map[string]*structpb.Value{
		"key":   structpb.NewStringValue("k"),
		"value": structpb.NewStringValue("%%%"),
	}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestToStatus(t *testing.T) {
	assert.Equal(t, codes.NotFound, status.Code(toStatus(errors.Wrap(service.ErrNotFound, "x"))))
	assert.Equal(t, codes.Internal, status.Code(toStatus(errors.New("boom"))))
}

package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/pancudaniel7/ccloud-producer/internal/pkg/apperr"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/applog"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/metrics"
)

// fakeAdmin remembers created topics and answers like a broker would.
type fakeAdmin struct {
	topics     map[string]bool
	reqErr     error
	respErr    error
	errMessage string
	lastPart   int32
	lastRF     int16
	closed     bool
}

func (f *fakeAdmin) CreateTopic(_ context.Context, partitions int32, rf int16, _ map[string]*string, topic string) (kadm.CreateTopicResponse, error) {
	f.lastPart, f.lastRF = partitions, rf
	if f.reqErr != nil {
		return kadm.CreateTopicResponse{}, f.reqErr
	}
	resp := kadm.CreateTopicResponse{Topic: topic}
	switch {
	case f.respErr != nil:
		resp.Err, resp.ErrMessage = f.respErr, f.errMessage
	case f.topics[topic]:
		resp.Err = kerr.TopicAlreadyExists
	default:
		f.topics[topic] = true
	}
	return resp, resp.Err
}

func (f *fakeAdmin) Close() { f.closed = true }

func newTestAdmin(t *testing.T, fa *fakeAdmin) *TopicAdmin {
	t.Helper()
	old := newAdminClient
	t.Cleanup(func() { newAdminClient = old })
	newAdminClient = func(...kgo.Opt) (topicCreator, error) { return fa, nil }

	ta, err := NewTopicAdmin(applog.Nop{}, Config{Brokers: []string{"a:9092"}, Username: "k", Password: "s"}, nil)
	require.NoError(t, err)
	return ta
}

func TestTopicAdmin_EnsureTopic_Idempotent(t *testing.T) {
	fa := &fakeAdmin{topics: map[string]bool{}}
	ta := newTestAdmin(t, fa)
	exists := metrics.Kafka().TopicProvisionTotal.WithLabelValues("exists")
	before := testutil.ToFloat64(exists)

	require.NoError(t, ta.EnsureTopic(context.Background(), "orders"))
	require.NoError(t, ta.EnsureTopic(context.Background(), "orders"))
	require.Equal(t, int32(1), fa.lastPart)
	require.Equal(t, int16(3), fa.lastRF)
	require.Equal(t, before+1, testutil.ToFloat64(exists))

	ta.Close()
	require.True(t, fa.closed)
}

func TestTopicAdmin_EnsureTopic_AlreadyExistsAsRequestError(t *testing.T) {
	ta := newTestAdmin(t, &fakeAdmin{topics: map[string]bool{}, reqErr: kerr.TopicAlreadyExists})
	require.NoError(t, ta.EnsureTopic(context.Background(), "orders"))
}

func TestTopicAdmin_EnsureTopic_Failures(t *testing.T) {
	cases := []struct {
		name string
		fa   *fakeAdmin
	}{
		{name: "request failed", fa: &fakeAdmin{topics: map[string]bool{}, reqErr: errors.New("dial tcp: refused")}},
		{name: "not authorized", fa: &fakeAdmin{topics: map[string]bool{}, respErr: kerr.TopicAuthorizationFailed, errMessage: "denied"}},
		{name: "bad replication", fa: &fakeAdmin{topics: map[string]bool{}, respErr: kerr.InvalidReplicationFactor}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ta := newTestAdmin(t, tc.fa)
			err := ta.EnsureTopic(context.Background(), "orders")
			var te *apperr.TopicProvisionErr
			require.ErrorAs(t, err, &te)
			require.Equal(t, "orders", te.Topic)
		})
	}
}

func TestTopicAdmin_EnsureTopic_RequiresTopic(t *testing.T) {
	ta := newTestAdmin(t, &fakeAdmin{topics: map[string]bool{}})
	var ie *apperr.InvalidArgErr
	require.ErrorAs(t, ta.EnsureTopic(context.Background(), ""), &ie)
}

func TestNewTopicAdmin_InvalidConfig(t *testing.T) {
	_, err := NewTopicAdmin(nil, Config{}, nil)
	require.Error(t, err)
}

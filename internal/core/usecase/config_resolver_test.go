package usecase

import (
	"os"
	"testing"

	"github.com/pancudaniel7/ccloud-producer/internal/pkg/apperr"
	"github.com/pancudaniel7/ccloud-producer/internal/pkg/applog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLineReader struct {
	files map[string][]string
	calls int
}

func (f *fakeLineReader) ReadAllLines(path string) ([]string, error) {
	f.calls++
	lines, ok := f.files[path]
	if !ok {
		return nil, apperr.NewConfigFileErr(path, "config file is not readable", os.ErrNotExist)
	}
	return lines, nil
}

var validFile = []string{
	"# Required connection configs for Kafka producer, consumer, and admin",
	"bootstrap.servers=a:9092,b:9092",
	"security.protocol=SASL_SSL",
	"sasl.mechanisms=PLAIN",
	"sasl.username=KEY",
	"sasl.password=SECRET",
	"   # linger",
	"linger.ms=5",
}

func newTestResolver(files map[string][]string) (*ConfigResolver, *fakeLineReader) {
	r := &fakeLineReader{files: files}
	return NewConfigResolver(applog.Nop{}, r, nil), r
}

func TestResolve_MissingTopic(t *testing.T) {
	cr, reader := newTestResolver(nil)

	res, err := cr.Resolve([]string{"--config", "client.properties"})
	require.NoError(t, err)
	require.True(t, res.NeedsUsage())
	assert.Contains(t, res.Usage, missingArgsHeading)
	assert.NotContains(t, res.Usage, missingConfigHeading)
	assert.Contains(t, res.Usage, "--topic TOPIC")
	assert.NotContains(t, res.Usage, "--config CONFIG")
	assert.Equal(t, "client.properties", res.Config.ConfigPath)
	assert.Zero(t, reader.calls, "file must not be read before arguments validate")
}

func TestResolve_UsageFormat(t *testing.T) {
	cr, _ := newTestResolver(nil)

	res, err := cr.Resolve(nil)
	require.NoError(t, err)
	want := "Confluent Cloud Go producer client\n" +
		"\n" +
		"Some required arguments were not provided:\n" +
		"    --config CONFIG\n" +
		"    The path to your Confluent Cloud configuration file\n" +
		"\n" +
		"    --topic TOPIC\n" +
		"    The topic name on which to operate\n"
	require.Equal(t, want, res.Usage)
}

func TestResolve_ArgumentForms(t *testing.T) {
	files := map[string][]string{"client.properties": validFile}
	cases := []struct {
		name string
		args []string
	}{
		{name: "long space", args: []string{"--config", "client.properties", "--topic", "orders"}},
		{name: "long equals", args: []string{"--config=client.properties", "--topic=orders"}},
		{name: "short", args: []string{"-f", "client.properties", "-t", "orders"}},
		{name: "any order", args: []string{"-t", "orders", "--config=client.properties"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cr, _ := newTestResolver(files)
			res, err := cr.Resolve(tc.args)
			require.NoError(t, err)
			require.False(t, res.NeedsUsage(), res.Usage)
			require.Equal(t, "orders", res.Config.Topic)
			require.Equal(t, "client.properties", res.Config.ConfigPath)
		})
	}
}

func TestResolve_FlagValueLooksLikeFlag(t *testing.T) {
	cr, reader := newTestResolver(map[string][]string{"client.properties": validFile})

	res, err := cr.Resolve([]string{"-f", "client.properties", "-t", "-p"})
	require.NoError(t, err)
	require.True(t, res.NeedsUsage())
	require.Contains(t, res.Usage, "--topic TOPIC")
	require.NotContains(t, res.Usage, "--config CONFIG")
	require.Zero(t, reader.calls)
}

func TestResolve_DanglingFlagCountsAsMissing(t *testing.T) {
	cr, _ := newTestResolver(nil)

	res, err := cr.Resolve([]string{"--config", "client.properties", "--topic"})
	require.NoError(t, err)
	require.True(t, res.NeedsUsage())
	require.Contains(t, res.Usage, "--topic TOPIC")
}

func TestResolve_EmptyValueCountsAsMissing(t *testing.T) {
	cr, _ := newTestResolver(nil)

	res, err := cr.Resolve([]string{"--config=", "--topic=orders"})
	require.NoError(t, err)
	require.True(t, res.NeedsUsage())
	require.Contains(t, res.Usage, "--config CONFIG")
}

func TestResolve_MissingConfigValue(t *testing.T) {
	file := []string{
		"bootstrap.servers=a:9092",
		"sasl.username=KEY",
		"sasl.password",
	}
	cr, _ := newTestResolver(map[string][]string{"client.properties": file})

	res, err := cr.Resolve([]string{"--config", "client.properties", "--topic", "orders"})
	require.NoError(t, err)
	require.True(t, res.NeedsUsage())
	assert.Contains(t, res.Usage, missingConfigHeading)
	assert.NotContains(t, res.Usage, missingArgsHeading)
	assert.Contains(t, res.Usage, "sasl.password=<string>")
	assert.NotContains(t, res.Usage, "sasl.username=<string>")
	assert.Equal(t, "orders", res.Config.Topic)
	assert.Equal(t, "a:9092", res.Config.BootstrapServers)
	assert.Equal(t, "KEY", res.Config.SASLUsername)
}

func TestResolve_Valid(t *testing.T) {
	cr, reader := newTestResolver(map[string][]string{"client.properties": validFile})

	res, err := cr.Resolve([]string{"--config", "client.properties", "--topic", "orders", "--log-level", "debug", "--partitions=3", "--dry-run"})
	require.NoError(t, err)
	require.False(t, res.NeedsUsage(), res.Usage)
	require.Equal(t, 1, reader.calls)

	cfg := res.Config
	assert.Equal(t, "a:9092,b:9092", cfg.BootstrapServers)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Brokers())
	assert.Equal(t, "KEY", cfg.SASLUsername)
	assert.Equal(t, "SECRET", cfg.SASLPassword)
	assert.Equal(t, "SASL_SSL", cfg.SecurityProtocol)
	assert.Equal(t, "PLAIN", cfg.SASLMechanisms)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "3", cfg.Extra["partitions"])
	assert.Equal(t, "true", cfg.Extra["dry-run"])
	assert.Equal(t, "5", cfg.Extra["linger.ms"])
	assert.NotContains(t, cfg.Extra, "# Required connection configs for Kafka producer, consumer, and admin")
}

func TestResolve_FileOverridesCLI(t *testing.T) {
	file := append([]string{"client.id=from-file"}, validFile...)
	cr, _ := newTestResolver(map[string][]string{"client.properties": file})

	res, err := cr.Resolve([]string{"-f", "client.properties", "-t", "orders", "--client.id=from-cli"})
	require.NoError(t, err)
	require.Equal(t, "from-file", res.Config.ClientID)
}

func TestResolve_UnreadableFileIsFatal(t *testing.T) {
	cr, _ := newTestResolver(nil)

	res, err := cr.Resolve([]string{"--config", "missing.properties", "--topic", "orders"})
	require.Error(t, err)
	require.False(t, res.NeedsUsage())
	var ce *apperr.ConfigFileErr
	require.ErrorAs(t, err, &ce)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve_InvalidFlushTimeout(t *testing.T) {
	file := append([]string{"flush.timeout.ms=soon"}, validFile...)
	cr, _ := newTestResolver(map[string][]string{"client.properties": file})

	_, err := cr.Resolve([]string{"-f", "client.properties", "-t", "orders"})
	var ie *apperr.InvalidArgErr
	require.ErrorAs(t, err, &ie)
}

func TestResolve_FlushTimeoutFromFile(t *testing.T) {
	file := append([]string{"flush.timeout.ms=2500"}, validFile...)
	cr, _ := newTestResolver(map[string][]string{"client.properties": file})

	res, err := cr.Resolve([]string{"-f", "client.properties", "-t", "orders"})
	require.NoError(t, err)
	require.Equal(t, 2500, res.Config.FlushTimeoutMS)
}

func TestResolve_PassthroughFlagDoesNotSatisfyFileSetting(t *testing.T) {
	file := []string{
		"bootstrap.servers=a:9092",
		"sasl.username=KEY",
	}
	cr, _ := newTestResolver(map[string][]string{"client.properties": file})

	res, err := cr.Resolve([]string{"-f", "client.properties", "-t", "orders", "--sasl.password=fromcli"})
	require.NoError(t, err)
	require.True(t, res.NeedsUsage())
	assert.Contains(t, res.Usage, missingConfigHeading)
	assert.Contains(t, res.Usage, "sasl.password=<string>")
	assert.NotContains(t, res.Usage, "sasl.username=<string>")
	assert.Equal(t, "fromcli", res.Config.SASLPassword)
}

func TestResolve_HelpPrintsUsage(t *testing.T) {
	cases := [][]string{
		{"--help"},
		{"-h"},
		{"-f", "client.properties", "-t", "orders", "--help"},
	}
	for _, args := range cases {
		cr, reader := newTestResolver(map[string][]string{"client.properties": validFile})

		res, err := cr.Resolve(args)
		require.NoError(t, err, args)
		require.True(t, res.NeedsUsage(), args)
		assert.Contains(t, res.Usage, "--config CONFIG")
		assert.Contains(t, res.Usage, "--topic TOPIC")
		assert.Zero(t, reader.calls)
	}
}

func TestResolve_FileCannotBlankTopic(t *testing.T) {
	file := append([]string{"topic="}, validFile...)
	cr, _ := newTestResolver(map[string][]string{"client.properties": file})

	res, err := cr.Resolve([]string{"-f", "client.properties", "-t", "orders"})
	require.NoError(t, err)
	require.True(t, res.NeedsUsage())
	assert.Contains(t, res.Usage, missingArgsHeading)
	assert.Contains(t, res.Usage, "--topic TOPIC")
	assert.NotContains(t, res.Usage, "--config CONFIG")
}

func TestResolve_FileMayOverrideTopic(t *testing.T) {
	file := append([]string{"topic=payments"}, validFile...)
	cr, _ := newTestResolver(map[string][]string{"client.properties": file})

	res, err := cr.Resolve([]string{"-f", "client.properties", "-t", "orders"})
	require.NoError(t, err)
	require.False(t, res.NeedsUsage(), res.Usage)
	assert.Equal(t, "payments", res.Config.Topic)
}

func TestResolve_KeysAreCaseInsensitive(t *testing.T) {
	file := []string{
		"BOOTSTRAP.SERVERS=a:9092",
		"Sasl.Username=KEY",
		"sasl.password=SECRET",
		"Linger.MS=5",
	}
	cr, _ := newTestResolver(map[string][]string{"client.properties": file})

	res, err := cr.Resolve([]string{"-f", "client.properties", "-t", "orders"})
	require.NoError(t, err)
	require.False(t, res.NeedsUsage(), res.Usage)
	assert.Equal(t, "a:9092", res.Config.BootstrapServers)
	assert.Equal(t, "KEY", res.Config.SASLUsername)
	assert.Equal(t, "5", res.Config.Extra["linger.ms"])
}

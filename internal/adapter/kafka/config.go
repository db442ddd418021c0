package kafka

// Config captures broker connectivity, credentials and topic layout for the admin and producer clients.
type Config struct {
	Brokers           []string `validate:"required,min=1,dive,required"`
	ClientID          string   `validate:"omitempty"`
	SecurityProtocol  string   `validate:"omitempty,oneof=PLAINTEXT SSL SASL_PLAINTEXT SASL_SSL"`
	SASLMechanism     string   `validate:"omitempty,oneof=PLAIN SCRAM-SHA-256 SCRAM-SHA-512"`
	Username          string   `validate:"required_with=Password"`
	Password          string   `validate:"required_with=Username"`
	Partitions        int32    `validate:"omitempty,gte=1"`
	ReplicationFactor int16    `validate:"omitempty,gte=1"`
}

const (
	defaultClientID          = "ccloud-producer"
	defaultPartitions        = int32(1)
	defaultReplicationFactor = int16(3)
)

const (
	protocolPlaintext     = "PLAINTEXT"
	protocolSSL           = "SSL"
	protocolSASLPlaintext = "SASL_PLAINTEXT"
	protocolSASLSSL       = "SASL_SSL"

	mechanismPlain       = "PLAIN"
	mechanismScramSHA256 = "SCRAM-SHA-256"
	mechanismScramSHA512 = "SCRAM-SHA-512"
)

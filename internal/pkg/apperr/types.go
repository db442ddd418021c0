package apperr

import "fmt"

const (
	invalidArgumentCode = "INVALID_ARGUMENT"
	internalErrorCode   = "INTERNAL_ERROR"
	configFileCode      = "CONFIG_FILE_ERROR"
	topicProvisionCode  = "TOPIC_PROVISION_ERROR"
	connectionCode      = "CONNECTION_ERROR"
	deliveryCode        = "DELIVERY_ERROR"
)

type messageCause struct {
	Msg   string
	Cause error
}

func (e *messageCause) Message() string   { return e.Msg }
func (e *messageCause) CauseError() error { return e.Cause }
func (e *messageCause) Unwrap() error     { return e.Cause }

func formatError(code, msg string, cause error) string {
	if cause != nil {
		return fmt.Sprintf("[%s] %s: %v", code, msg, cause)
	}
	return fmt.Sprintf("[%s] %s", code, msg)
}

type InvalidArgErr struct {
	messageCause
}

func NewInvalidArgErr(msg string, cause error) *InvalidArgErr {
	return &InvalidArgErr{messageCause: messageCause{Msg: msg, Cause: cause}}
}

func (e *InvalidArgErr) Error() string { return formatError(invalidArgumentCode, e.Msg, e.Cause) }
func (e *InvalidArgErr) Code() string  { return invalidArgumentCode }

type InternalErr struct {
	messageCause
}

func NewInternalErr(msg string, cause error) *InternalErr {
	return &InternalErr{messageCause: messageCause{Msg: msg, Cause: cause}}
}

func (e *InternalErr) Error() string { return formatError(internalErrorCode, e.Msg, e.Cause) }
func (e *InternalErr) Code() string  { return internalErrorCode }

// ConfigFileErr reports a configuration file that could not be opened or read.
type ConfigFileErr struct {
	messageCause
	Path string
}

func NewConfigFileErr(path, msg string, cause error) *ConfigFileErr {
	return &ConfigFileErr{messageCause: messageCause{Msg: msg, Cause: cause}, Path: path}
}

func (e *ConfigFileErr) Error() string {
	return formatError(configFileCode, fmt.Sprintf("%s (%s)", e.Msg, e.Path), e.Cause)
}
func (e *ConfigFileErr) Code() string { return configFileCode }

// TopicProvisionErr is any topic creation failure other than "already exists".
type TopicProvisionErr struct {
	messageCause
	Topic string
}

func NewTopicProvisionErr(topic, msg string, cause error) *TopicProvisionErr {
	return &TopicProvisionErr{messageCause: messageCause{Msg: msg, Cause: cause}, Topic: topic}
}

func (e *TopicProvisionErr) Error() string {
	return formatError(topicProvisionCode, fmt.Sprintf("%s (topic=%s)", e.Msg, e.Topic), e.Cause)
}
func (e *TopicProvisionErr) Code() string { return topicProvisionCode }

type ConnectionErr struct {
	messageCause
}

func NewConnectionErr(msg string, cause error) *ConnectionErr {
	return &ConnectionErr{messageCause: messageCause{Msg: msg, Cause: cause}}
}

func (e *ConnectionErr) Error() string { return formatError(connectionCode, e.Msg, e.Cause) }
func (e *ConnectionErr) Code() string  { return connectionCode }

// DeliveryErr is attached to a delivery report for a record the broker did not confirm.
type DeliveryErr struct {
	messageCause
}

func NewDeliveryErr(msg string, cause error) *DeliveryErr {
	return &DeliveryErr{messageCause: messageCause{Msg: msg, Cause: cause}}
}

func (e *DeliveryErr) Error() string { return formatError(deliveryCode, e.Msg, e.Cause) }
func (e *DeliveryErr) Code() string  { return deliveryCode }

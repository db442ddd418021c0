package entity

// Record is a single keyed message handed to the producer.
type Record struct {
	Topic string
	Key   []byte
	Value []byte
}

// DeliveryReport is the broker's answer for one produced record.
// Err is nil when the record was confirmed; Partition and Offset are only meaningful then.
type DeliveryReport struct {
	Record    Record
	Partition int32
	Offset    int64
	Err       error
}

func (r DeliveryReport) Delivered() bool { return r.Err == nil }

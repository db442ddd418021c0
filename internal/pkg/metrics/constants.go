package metrics

// Component label values used by app-level metrics.
const (
	ComponentConfig   = "config"
	ComponentAdmin    = "admin"
	ComponentProducer = "producer"
)

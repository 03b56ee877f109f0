package depthconfigv1

// Registry holds the depth level assigned to each instrument.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=depthconfigv1_mock
type Registry interface {
	// Get returns the configured level, or the default when the instrument is unknown.
	Get(instrumentID string) int
	Set(instrumentID string, level int) error
	Default() int
	Snapshot() map[string]int
}

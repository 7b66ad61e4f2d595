package config

//go:generate go run github.com/dmarkham/enumer -type Backend -trimprefix Backend -transform lower -yaml -output backend.gen.go

// Backend selects the storage implementation behind the store interfaces.
type Backend int

const (
	BackendJSON Backend = iota
	BackendPostgres
)

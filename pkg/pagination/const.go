package pagination

// DefaultBatchSize is the page size used when none is configured
const DefaultBatchSize = 100

// MaxResultWindow is the default ceiling on from+size for a windowed search
const MaxResultWindow = 10_000

package domain

const (
	// MapFileName is the name of the task configuration file.
	MapFileName = "fmap.yaml"
)

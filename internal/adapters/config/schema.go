package config

// Mapfile represents the structure of the fmap.yaml configuration file.
// Tasks form a list so declaration order is preserved through the run.
type Mapfile struct {
	Version string     `yaml:"version"`
	Tasks   []*TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in the configuration.
// Steps and Parts reuse the same shape for chained and composite
// sub-mappers; Name is meaningless on nested entries and is ignored.
type TaskDTO struct {
	Name            string     `yaml:"name"`
	Mapper          string     `yaml:"mapper"`
	Op              string     `yaml:"op"`
	Src             string     `yaml:"src"`
	Paths           []string   `yaml:"paths"`
	Search          string     `yaml:"search"`
	Replace         string     `yaml:"replace"`
	Target          string     `yaml:"target"`
	BaseDir         string     `yaml:"baseDir"`
	FileDep         *bool      `yaml:"fileDep"`
	AllowEmptyMap   bool       `yaml:"allowEmptyMap"`
	FollowSymlinks  *bool      `yaml:"followSymlinks"`
	Flags           []string   `yaml:"flags"`
	KeepNonmatching bool       `yaml:"keepNonmatching"`
	Steps           []*TaskDTO `yaml:"steps"`
	Parts           []*TaskDTO `yaml:"parts"`
}

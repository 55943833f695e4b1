// Package config provides the mapfile loader for fmap.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/fmap/fileops"
	"go.trai.ch/fmap/internal/core/domain"
	"go.trai.ch/fmap/internal/core/ports"
	"go.trai.ch/fmap/mapper"
)

// Loader implements ports.ConfigLoader using a YAML mapfile.
// Fs backs both the mapfile lookup and the mappers built from it.
type Loader struct {
	Logger ports.Logger
	Fs     afero.Fs
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, Fs: afero.NewOsFs()}
}

// Load reads the mapfile reachable from the given working directory and
// returns the task set declared in it.
func (l *Loader) Load(cwd string) (*domain.TaskSet, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	return l.loadMapfile(configPath)
}

// findConfiguration walks up from cwd until it finds a mapfile.
func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	for {
		mapfilePath := filepath.Join(currentDir, domain.MapFileName)
		if _, err := l.Fs.Stat(mapfilePath); err == nil {
			return mapfilePath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) loadMapfile(configPath string) (*domain.TaskSet, error) {
	mapfileData, err := afero.ReadFile(l.Fs, configPath)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var mapfile Mapfile
	if err := yaml.Unmarshal(mapfileData, &mapfile); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	if len(mapfile.Tasks) == 0 {
		return nil, zerr.With(domain.ErrNoTasksDefined, "config", configPath)
	}

	set := domain.NewTaskSet()
	for _, dto := range mapfile.Tasks {
		m, err := l.buildMapper(dto)
		if err != nil {
			return nil, zerr.With(err, "task", dto.Name)
		}
		if err := set.Add(&domain.Task{Name: dto.Name, Mapper: m}); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// buildMapper constructs the mapper a task definition describes.
// It recurses into steps and parts for chained and composite mappers.
func (l *Loader) buildMapper(dto *TaskDTO) (mapper.Mapper, error) {
	cb, err := l.operation(dto.Op)
	if err != nil {
		return nil, err
	}

	opts, err := l.options(dto)
	if err != nil {
		return nil, err
	}

	src := source(dto)

	switch dto.Mapper {
	case "identity":
		return mapper.NewIdentity(src, cb, opts...)
	case "glob":
		return mapper.NewGlob(src, dto.Replace, cb, opts...)
	case "regex":
		return mapper.NewRegex(src, dto.Search, dto.Replace, cb, opts...)
	case "merge":
		return mapper.NewMerge(src, dto.Target, cb, opts...)
	case "chained":
		subs, err := l.buildSubs(dto.Steps, dto)
		if err != nil {
			return nil, err
		}
		return mapper.NewChained(src, subs, cb, opts...)
	case "composite":
		subs, err := l.buildSubs(dto.Parts, nil)
		if err != nil {
			return nil, err
		}
		return mapper.NewComposite(subs, cb, opts...)
	default:
		return nil, zerr.With(domain.ErrUnknownMapper, "mapper", dto.Mapper)
	}
}

// buildSubs constructs the sub-mappers of a chained or composite task.
// Chain steps without a source of their own inherit the chain's source,
// which feeds pattern derivation; composite parts must bring their own.
func (l *Loader) buildSubs(dtos []*TaskDTO, chain *TaskDTO) ([]mapper.Mapper, error) {
	subs := make([]mapper.Mapper, 0, len(dtos))
	for i, dto := range dtos {
		if chain != nil {
			if dto.Src == "" && len(dto.Paths) == 0 {
				inherited := *dto
				inherited.Src = chain.Src
				inherited.Paths = chain.Paths
				dto = &inherited
			}
			if dto.BaseDir != "" || dto.FileDep != nil || dto.FollowSymlinks != nil {
				l.Logger.Warn(fmt.Sprintf("step %d: resolve options have no effect inside a chain", i))
			}
		}

		sub, err := l.buildMapper(dto)
		if err != nil {
			return nil, zerr.With(err, "sub_mapper", i)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// operation maps an op name to its stock callback. An empty op yields a
// nil callback so chained and composite tasks can defer to their stages.
func (l *Loader) operation(op string) (mapper.Callback, error) {
	switch op {
	case "":
		return nil, nil
	case "copy":
		return fileops.Copy(l.Fs), nil
	case "move":
		return fileops.Move(l.Fs), nil
	case "concat":
		return fileops.Concat(l.Fs), nil
	case "touch":
		return fileops.Touch(l.Fs), nil
	default:
		return nil, zerr.With(domain.ErrUnknownOperation, "op", op)
	}
}

// options translates the set DTO knobs into mapper options. Options a
// variant does not support are still passed through so the constructor
// can reject them with a precise configuration error.
func (l *Loader) options(dto *TaskDTO) ([]mapper.Option, error) {
	var opts []mapper.Option

	// Composite mappers resolve nothing themselves; their parts carry the fs.
	if dto.Mapper != "composite" {
		opts = append(opts, mapper.WithFs(l.Fs))
	}
	if dto.BaseDir != "" {
		opts = append(opts, mapper.WithBaseDir(dto.BaseDir))
	}
	if dto.FileDep != nil {
		opts = append(opts, mapper.WithFileDep(*dto.FileDep))
	}
	if dto.AllowEmptyMap {
		opts = append(opts, mapper.WithAllowEmptyMap())
	}
	if dto.FollowSymlinks != nil {
		opts = append(opts, mapper.WithFollowSymlinks(*dto.FollowSymlinks))
	}
	// The regex mapper takes its search expression positionally.
	if dto.Search != "" && dto.Mapper != "regex" {
		opts = append(opts, mapper.WithSearch(dto.Search))
	}
	if len(dto.Flags) > 0 {
		flags, err := parseFlags(dto.Flags)
		if err != nil {
			return nil, err
		}
		opts = append(opts, mapper.WithFlags(flags))
	}
	if dto.KeepNonmatching {
		opts = append(opts, mapper.WithKeepNonmatching())
	}

	return opts, nil
}

func parseFlags(names []string) (mapper.Flags, error) {
	var flags mapper.Flags
	for _, name := range names {
		switch name {
		case "ignorecase":
			flags |= mapper.FlagIgnoreCase
		case "multiline":
			flags |= mapper.FlagMultiline
		case "dotall":
			flags |= mapper.FlagDotAll
		default:
			return 0, zerr.With(domain.ErrUnknownFlag, "flag", name)
		}
	}
	return flags, nil
}

func source(dto *TaskDTO) mapper.Source {
	if len(dto.Paths) > 0 {
		return mapper.Paths(dto.Paths...)
	}
	return mapper.Pattern(dto.Src)
}

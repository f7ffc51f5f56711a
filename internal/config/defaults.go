package config

// Overrides are caller-supplied values (typically command-line flags) that
// take precedence over both per-instance values and the defaults block.
// Zero fields mean "no override".
type Overrides struct {
	PollInterval int
	MaxPendTime  int
}

// MergeDefaults copies the shared fields of the executors defaults block
// down into every batch executor instance that does not set them, and
// applies caller overrides on top. The precedence per field is:
//
//	override > per-instance value > defaults block
//
// The input is not mutated; the returned config carries fresh maps and
// option slices. Merging is shallow per field and idempotent. Local
// executors have no inheritable fields and are copied unchanged. Only a
// field that is absent from the instance inherits; an explicitly declared
// value is kept as written (validation rejects non-positive ones). A missing
// defaults block leaves instance values as declared; whether a mandatory
// field such as a batch launcher ended up set is checked by the executor
// registry, not here.
func MergeDefaults(ec ExecutorConfig, ov Overrides) ExecutorConfig {
	merged := ExecutorConfig{
		Defaults: copyDefaults(ec.Defaults),
		Local:    copyLocal(ec.Local),
		Slurm:    mergeBatch(ec.Slurm, ec.Defaults, ov),
		LSF:      mergeBatch(ec.LSF, ec.Defaults, ov),
		Cobalt:   mergeBatch(ec.Cobalt, ec.Defaults, ov),
		PBS:      mergeBatch(ec.PBS, ec.Defaults, ov),
	}
	return merged
}

func mergeBatch(instances map[string]BatchExecutorSpec, defaults *ExecutorDefaults, ov Overrides) map[string]BatchExecutorSpec {
	if instances == nil {
		return nil
	}
	out := make(map[string]BatchExecutorSpec, len(instances))
	for name, spec := range instances {
		spec.Options = append([]string(nil), spec.Options...)
		spec.PollInterval = copyInt(spec.PollInterval)
		spec.MaxPendTime = copyInt(spec.MaxPendTime)
		if defaults != nil {
			if spec.PollInterval == nil {
				spec.PollInterval = copyInt(defaults.PollInterval)
			}
			if spec.Launcher == "" {
				spec.Launcher = defaults.Launcher
			}
			if spec.MaxPendTime == nil {
				spec.MaxPendTime = copyInt(defaults.MaxPendTime)
			}
			if spec.Account == "" {
				spec.Account = defaults.Account
			}
		}
		if ov.PollInterval > 0 {
			v := ov.PollInterval
			spec.PollInterval = &v
		}
		if ov.MaxPendTime > 0 {
			v := ov.MaxPendTime
			spec.MaxPendTime = &v
		}
		out[name] = spec
	}
	return out
}

func copyLocal(instances map[string]LocalExecutorSpec) map[string]LocalExecutorSpec {
	if instances == nil {
		return nil
	}
	out := make(map[string]LocalExecutorSpec, len(instances))
	for name, spec := range instances {
		out[name] = spec
	}
	return out
}

func copyDefaults(d *ExecutorDefaults) *ExecutorDefaults {
	if d == nil {
		return nil
	}
	cp := *d
	cp.PollInterval = copyInt(d.PollInterval)
	cp.MaxPendTime = copyInt(d.MaxPendTime)
	return &cp
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

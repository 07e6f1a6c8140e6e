package extract

import (
	"fmt"

	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/collect/collectors"
	"github.com/yaklabco/mdwarehouse/pkg/config"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

// OptionsFromConfig resolves engine options from a loaded configuration.
// Collectors run in catalog order; each is enabled per its config entry,
// the Only list, or its catalog default.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	opts := Options{
		Flavor:  string(cfg.Flavor),
		Linkify: cfg.LinkifyEnabled(),
		Strict:  cfg.StrictEnabled(),
		Timeout: cfg.TimeoutBudget(),
		Limits: warehouse.Limits{
			MaxTokens: cfg.Limits.MaxTokens,
			MaxBytes:  cfg.Limits.MaxBytes,
			MaxLine:   cfg.Limits.MaxLine,
		},
		Collectors:       []string{},
		CollectorOptions: make(map[string]collectors.Options),
	}

	if cfg.Guard != "" {
		guard, ok := collect.GuardByName(cfg.Guard)
		if !ok {
			return Options{}, fmt.Errorf("unknown timeout guard %q", cfg.Guard)
		}
		opts.Guard = guard
	}

	for _, name := range cfg.Only {
		if _, ok := collectors.Lookup(name); !ok {
			return Options{}, fmt.Errorf("%w: %q", ErrUnknownCollector, name)
		}
	}

	for _, info := range collectors.Catalog() {
		if !cfg.CollectorEnabled(info.Name, info.DefaultEnabled) {
			continue
		}
		opts.Collectors = append(opts.Collectors, info.Name)

		cc := cfg.Collectors[info.Name]
		co := collectors.Options{IgnoreInside: cc.IgnoreInside}
		if cc.MaxItems != nil {
			co.MaxItems = *cc.MaxItems
		}
		opts.CollectorOptions[info.Name] = co
	}

	return opts, nil
}

package config

import "fmt"

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if c.DownloadDir == "" {
		return fmt.Errorf("download directory must not be empty")
	}
	if c.Overrides != nil {
		for id, t := range c.Overrides.Sources {
			if t == nil {
				continue
			}
			if t.DelayMin != nil && t.DelayMax != nil && *t.DelayMax < *t.DelayMin {
				return fmt.Errorf("source %s: delay_max below delay_min", id)
			}
		}
	}
	return nil
}

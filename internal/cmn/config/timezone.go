package config

import (
	"fmt"
	"time"

	"github.com/dagucloud/timescope/internal/cmn/tz"
)

// setTimezone fills the Location and TzOffsetInSec fields of cfg from cfg.TZ.
//
// A configured zone must exist in the zone database; otherwise an error is
// returned. Without one, the system local zone is used. The process-wide zone
// is not changed here: callers apply cfg.TZ with tz.SetActive.
func setTimezone(cfg *Core) error {
	if name, ok := cfg.TZ.Name(); ok {
		loc, err := tz.LoadLocation(name)
		if err != nil {
			return fmt.Errorf("failed to load timezone: %w", err)
		}
		cfg.Location = loc
		_, cfg.TzOffsetInSec = time.Now().In(loc).Zone()
		return nil
	}

	cfg.Location = time.Local
	_, cfg.TzOffsetInSec = time.Now().Zone()
	return nil
}

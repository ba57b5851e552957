package system_healthcheck

import (
	"fmt"

	"sprintdesk/internal/storage"
	cache_utils "sprintdesk/internal/util/cache"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type SystemStatusDTO struct {
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
	DiskUsedPercent   float64 `json:"diskUsedPercent"`
}

type HealthcheckService struct{}

// IsAvailable reports whether the service can serve requests. Both the
// database and the cache must be reachable.
func (s *HealthcheckService) IsAvailable() error {
	if err := storage.GetDb().Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := s.testCacheConnection(); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}

func (s *HealthcheckService) GetSystemStatus() (*SystemStatusDTO, error) {
	memoryStats, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to read memory stats: %w", err)
	}

	diskStats, err := disk.Usage("/")
	if err != nil {
		return nil, fmt.Errorf("failed to read disk stats: %w", err)
	}

	return &SystemStatusDTO{
		MemoryUsedPercent: memoryStats.UsedPercent,
		DiskUsedPercent:   diskStats.UsedPercent,
	}, nil
}

func (s *HealthcheckService) testCacheConnection() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache connection test panicked: %v", r)
		}
	}()

	cache_utils.TestCacheConnection()
	return nil
}

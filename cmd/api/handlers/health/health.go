package health

import (
	"context"
	"time"

	"blog.com/cmd/api/handlers"
	"blog.com/pkg/database"
	"blog.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

type Status struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
	MemoryUsed    uint64  `json:"memoryUsed"`
	MemoryTotal   uint64  `json:"memoryTotal"`
	Database      string  `json:"database"`
}

// Check 机器负载和数据库连通性，数据库不通时返回 500
func Check(ctx context.Context, c *app.RequestContext) {
	var st Status
	if percents, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false); err == nil && len(percents) > 0 {
		st.CPUPercent = percents[0]
	} else if err != nil {
		hlog.CtxWarnf(ctx, "read cpu usage failed: %v", err)
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		st.MemoryPercent = vm.UsedPercent
		st.MemoryUsed = vm.Used
		st.MemoryTotal = vm.Total
	} else {
		hlog.CtxWarnf(ctx, "read memory usage failed: %v", err)
	}

	st.Database = "ok"
	if err := database.HealthCheck(ctx); err != nil {
		st.Database = err.Error()
		handlers.SendResponse(c, errno.MysqlErr, st)
		return
	}
	handlers.SendResponse(c, errno.Success, st)
}

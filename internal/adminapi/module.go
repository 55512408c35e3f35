// Package adminapi 运维管理接口：查看调度器状态、暂停恢复、手动触发。
package adminapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peppone-choi/opensamguk-sub002/internal/turn"
)

// Daemon 管理接口操控的调度器能力面。
type Daemon interface {
	State() turn.DaemonState
	Pause()
	Resume()
	RunOnce(ctx context.Context) bool
}

type Module struct {
	daemon Daemon
	worlds turn.WorldRepo
}

func NewModule(daemon Daemon, worlds turn.WorldRepo) *Module {
	return &Module{daemon: daemon, worlds: worlds}
}

func (m *Module) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", BearerAuth())
	admin.GET("/status", m.status)
	admin.POST("/pause", m.pause)
	admin.POST("/resume", m.resume)
	admin.POST("/trigger", m.trigger)
}

type worldStatus struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Realtime bool   `json:"realtime"`
}

func (m *Module) status(c *gin.Context) {
	worlds, err := m.worlds.ActiveWorlds(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 1, "msg": err.Error()})
		return
	}
	list := make([]worldStatus, 0, len(worlds))
	for _, w := range worlds {
		list = append(list, worldStatus{
			ID:       int64(w.ID),
			Name:     w.Name,
			Year:     w.Year,
			Month:    w.Month,
			Realtime: w.Realtime,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"code":   0,
		"state":  m.daemon.State().String(),
		"worlds": list,
	})
}

func (m *Module) pause(c *gin.Context) {
	m.daemon.Pause()
	c.JSON(http.StatusOK, gin.H{"code": 0, "state": m.daemon.State().String()})
}

func (m *Module) resume(c *gin.Context) {
	m.daemon.Resume()
	c.JSON(http.StatusOK, gin.H{"code": 0, "state": m.daemon.State().String()})
}

// trigger 立即跑一轮扫描。调度器在跑或已暂停时返回 409。
func (m *Module) trigger(c *gin.Context) {
	if !m.daemon.RunOnce(c.Request.Context()) {
		c.JSON(http.StatusConflict, gin.H{"code": 1, "msg": "daemon busy or paused", "state": m.daemon.State().String()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "state": m.daemon.State().String()})
}

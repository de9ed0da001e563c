package interfaces

import (
	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/app"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/infra/repo"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/task/interfaces/handler"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	service *app.TaskService
}

func New(db *gorm.DB) *Module {
	return &Module{
		service: app.NewTaskService(repo.NewTaskRepo(db), repo.NewTagRepo(db)),
	}
}

func (m *Module) Register(g *gin.RouterGroup) {
	handler.NewTask(m.service).RegisterRoutes(g)
}

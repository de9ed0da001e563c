package interfaces

import (
	"github.com/SahiraTejada/task-layer-arquitecture/internal/user/app"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/user/infra/repo"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/user/interfaces/handler"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	service *app.UserService
}

func New(db *gorm.DB) *Module {
	return &Module{
		service: app.NewUserService(repo.NewUserRepo(db)),
	}
}

func (m *Module) Service() *app.UserService {
	return m.service
}

func (m *Module) Register(g *gin.RouterGroup) {
	handler.NewUser(m.service).RegisterRoutes(g)
}

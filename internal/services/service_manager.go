package services

import (
	"github.com/skilldeck/learning-platform/internal/events"
	"github.com/skilldeck/learning-platform/internal/repositories"
	"github.com/skilldeck/learning-platform/internal/repositories/rediscache"
	"github.com/skilldeck/learning-platform/internal/storage"
	"github.com/skilldeck/learning-platform/internal/utils"
	"github.com/skilldeck/learning-platform/internal/validator"
)

// ServiceManager hands out the service instances the handler layer depends on.
type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Course() CourseService
	Status() StatusService
	Material() MaterialService
	Export() ExportService
}

// ServiceManagerDeps collects everything the services are built from.
type ServiceManagerDeps struct {
	Repo          repositories.Repository
	Validator     *validator.Validator
	Logger        utils.Logger
	Publisher     events.EventPublisher
	Store         *storage.LocalStore
	PresenceCache *rediscache.PresenceCache
	Auth          AuthConfig
}

type serviceManager struct {
	auth     AuthService
	user     UserService
	course   CourseService
	status   StatusService
	material MaterialService
	export   ExportService
}

func NewServiceManager(deps ServiceManagerDeps) ServiceManager {
	return &serviceManager{
		auth:     NewAuthService(deps.Repo, deps.Validator, deps.Logger, deps.Auth),
		user:     NewUserService(deps.Repo, deps.Validator, deps.Logger, deps.Publisher),
		course:   NewCourseService(deps.Repo, deps.Validator, deps.Logger, deps.Publisher),
		status:   NewStatusService(deps.Repo, deps.PresenceCache, deps.Validator, deps.Logger),
		material: NewMaterialService(deps.Repo, deps.Store, deps.Validator, deps.Logger),
		export:   NewExportService(deps.Repo, deps.Logger),
	}
}

func (m *serviceManager) Auth() AuthService         { return m.auth }
func (m *serviceManager) User() UserService         { return m.user }
func (m *serviceManager) Course() CourseService     { return m.course }
func (m *serviceManager) Status() StatusService     { return m.status }
func (m *serviceManager) Material() MaterialService { return m.material }
func (m *serviceManager) Export() ExportService     { return m.export }

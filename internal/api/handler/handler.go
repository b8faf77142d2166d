package handler

import "dept-portal/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Paper        *PaperHandler
	StudentPaper *StudentPaperHandler
	Project      *ProjectHandler
	Lecturer     *LecturerHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Paper:        NewPaperHandler(svc.Paper),
		StudentPaper: NewStudentPaperHandler(svc.StudentPaper),
		Project:      NewProjectHandler(svc.Project),
		Lecturer:     NewLecturerHandler(svc.Lecturer),
		Export:       NewExportHandler(svc.Export),
	}
}

package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Profile       ProfileRepository
	UserRole      UserRoleRepository
	Lecturer      LecturerRepository
	ResearchPaper ResearchPaperRepository
	StudentPaper  StudentPaperRepository
	Project       ProjectRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Profile:       NewProfileRepo(db),
		UserRole:      NewUserRoleRepo(db),
		Lecturer:      NewLecturerRepo(db),
		ResearchPaper: NewResearchPaperRepo(db),
		StudentPaper:  NewStudentPaperRepo(db),
		Project:       NewProjectRepo(db),
	}
}

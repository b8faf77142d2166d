package dto

// ── 论文模块 DTO ──
//
// authors/keywords 以逗号分隔字符串提交（与前端表单一致），
// 在 Service 入口处统一解析为字符串序列（去空白、丢弃空项）

// SubmitResearchPaperRequest 教师提交科研论文请求
type SubmitResearchPaperRequest struct {
	Title               string `json:"title"                 binding:"required"`
	Abstract            string `json:"abstract"              binding:"required"`
	Authors             string `json:"authors"               binding:"omitempty,max=500"`
	Keywords            string `json:"keywords"              binding:"omitempty,max=500"`
	JournalOrConference string `json:"journal_or_conference" binding:"omitempty,max=255"`
	PublicationDate     string `json:"publication_date"      binding:"omitempty,datetime=2006-01-02"`
	FileURL             string `json:"file_url"              binding:"omitempty,url"`
}

// SubmitStudentPaperRequest 学生提交论文请求
type SubmitStudentPaperRequest struct {
	Title               string `json:"title"                 binding:"required"`
	Abstract            string `json:"abstract"              binding:"required"`
	Authors             string `json:"authors"               binding:"omitempty,max=500"`
	Keywords            string `json:"keywords"              binding:"omitempty,max=500"`
	JournalOrConference string `json:"journal_or_conference" binding:"omitempty,max=255"`
	PublicationDate     string `json:"publication_date"      binding:"omitempty,datetime=2006-01-02"`
	SupervisorID        string `json:"supervisor_id"         binding:"omitempty,uuid"`
	FileURL             string `json:"file_url"              binding:"omitempty,url"`
}

// ReviewRequest 审批请求（论文 / 项目共用）
type ReviewRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}

// ResearchListRequest 公开科研论文列表查询参数
type ResearchListRequest struct {
	Search  string `form:"search"  binding:"omitempty,max=100"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// PaperResponse 论文响应（科研论文 / 学生论文共用形状）
type PaperResponse struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Abstract            string   `json:"abstract"`
	Authors             []string `json:"authors,omitempty"`
	Keywords            []string `json:"keywords,omitempty"`
	JournalOrConference string   `json:"journal_or_conference,omitempty"`
	PublicationDate     string   `json:"publication_date,omitempty"`
	FileURL             string   `json:"file_url,omitempty"`
	ApprovalStatus      string   `json:"approval_status"`
	LecturerName        string   `json:"lecturer_name,omitempty"`   // 科研论文：归属教师
	SupervisorName      string   `json:"supervisor_name,omitempty"` // 学生论文：指导教师
	CreatedAt           string   `json:"created_at"`
}

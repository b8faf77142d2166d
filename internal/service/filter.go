package service

import (
	"strings"

	"dept-portal/backend/internal/model"
)

// ── 纯函数：列表解析与内存过滤 ──
//
// 公开列表页的搜索/筛选在内存中完成：先取全量已通过条目（可走缓存），
// 再用这里的纯函数过滤。函数不触库、不改入参，空条件恒等返回。

// SplitList 将逗号分隔的表单字符串解析为字符串序列
// 去除各项首尾空白，丢弃空项；空输入返回 nil
func SplitList(s string) model.StringArray {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make(model.StringArray, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// containsFold 判断 s 是否包含 substr（大小写不敏感）
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// anyContainsFold 判断字符串序列中是否有任一元素包含 substr（大小写不敏感）
func anyContainsFold(items []string, substr string) bool {
	for _, item := range items {
		if containsFold(item, substr) {
			return true
		}
	}
	return false
}

// containsExact 判断字符串序列中是否存在与 target 完全相等的元素
func containsExact(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

// FilterResearchPapers 按搜索词与关键词过滤科研论文
//   - search：标题 / 摘要 / 作者 任一命中（大小写不敏感子串）
//   - keyword：关键词列表精确匹配（关键词筛选来自既有关键词集合，不做模糊）
//
// 两个条件同时给出时取交集；均为空时原样返回
func FilterResearchPapers(papers []model.ResearchPaper, search, keyword string) []model.ResearchPaper {
	if search == "" && keyword == "" {
		return papers
	}
	result := make([]model.ResearchPaper, 0, len(papers))
	for _, p := range papers {
		if search != "" {
			if !containsFold(p.Title, search) &&
				!containsFold(p.Abstract, search) &&
				!anyContainsFold(p.Authors, search) {
				continue
			}
		}
		if keyword != "" && !containsExact(p.Keywords, keyword) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// FilterProjects 按搜索词与生命周期状态过滤项目
//   - search：标题 / 描述 / 技术栈 任一命中（大小写不敏感子串）
//   - status：生命周期状态精确匹配
//
// 两个条件同时给出时取交集；均为空时原样返回
func FilterProjects(projects []model.DepartmentProject, search, status string) []model.DepartmentProject {
	if search == "" && status == "" {
		return projects
	}
	result := make([]model.DepartmentProject, 0, len(projects))
	for _, p := range projects {
		if search != "" {
			if !containsFold(p.Title, search) &&
				!containsFold(p.Description, search) &&
				!anyContainsFold(p.Technologies, search) {
				continue
			}
		}
		if status != "" && p.Status != status {
			continue
		}
		result = append(result, p)
	}
	return result
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"dept-portal/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("暂无已通过的论文可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出已通过审批的科研论文为 Excel (.xlsx)，供系里归档 / 上报
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportApprovedPapers 导出全部已通过的科研论文
	ExportApprovedPapers(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportApprovedPapers(ctx context.Context) (*bytes.Buffer, string, error) {
	papers, err := s.repo.ResearchPaper.ListApproved(ctx)
	if err != nil {
		s.logger.Error("列出论文失败", zap.Error(err))
		return nil, "", err
	}
	if len(papers) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "科研论文"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 40)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 25)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 18)
	f.SetColWidth(sheetName, "G", "G", 20)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	headers := []string{"标题", "作者", "关键词", "期刊/会议", "发表日期", "归属教师", "提交时间"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", col)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 数据行
	for i := range papers {
		p := &papers[i]
		row := i + 2

		journal := ""
		if p.JournalOrConference != nil {
			journal = *p.JournalOrConference
		}
		pubDate := ""
		if p.PublicationDate != nil {
			pubDate = p.PublicationDate.Format("2006-01-02")
		}
		lecturerName := ""
		if p.Lecturer != nil {
			lecturerName = p.Lecturer.Name
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), strings.Join(p.Authors, ", "))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), strings.Join(p.Keywords, ", "))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), journal)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), pubDate)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), lecturerName)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), p.CreatedAt.Format("2006-01-02 15:04"))
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("科研论文_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

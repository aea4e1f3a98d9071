package service

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-console/internal/models"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
	"github.com/noah-isme/afterschool-console/pkg/export"
)

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders the rows a view currently shows into a document.
type ExportService struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{logger: logger, now: time.Now}
}

// Export renders page in the requested format. Only committed rows are
// exported; a view without a snapshot has nothing to download.
func (s *ExportService) Export(page *models.ViewPage, rawFormat string) (*ExportFile, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if page == nil || !page.Mounted {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "view has no loaded rows to export")
	}
	renderer, err := export.NewRenderer(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	table := buildTable(page)
	body, err := renderer.Render(table)
	if err != nil {
		s.logger.Error("failed to render export", zap.String("view", string(page.View)), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("%s_%s.%s", page.View, s.now().Format("20060102_150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func buildTable(page *models.ViewPage) export.Table {
	title := string(page.View)
	if def, ok := LookupView(page.View); ok {
		title = def.Title
	}

	if page.View == models.ViewUserRoster {
		table := export.Table{Title: title, Headers: []string{"ID", "이름", "이메일", "역할"}}
		for _, u := range page.Users {
			table.Rows = append(table.Rows, []string{strconv.FormatInt(u.ID, 10), u.Name, u.Email, u.RoleLabel})
		}
		return table
	}

	table := export.Table{
		Title:   title,
		Headers: []string{"ID", "강좌명", "교사", "분류", "일정", "장소", "분기", "종료일", "상태", "수강 인원"},
	}
	for _, c := range page.Courses {
		quarter := ""
		if c.Quarter > 0 {
			quarter = strconv.Itoa(c.Quarter)
		}
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.TeacherName,
			c.Category,
			c.Schedule,
			c.Location,
			quarter,
			c.EndDate,
			c.StatusLabel,
			c.Enrollment,
		})
	}
	return table
}

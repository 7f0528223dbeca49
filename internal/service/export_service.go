package service

import (
	"errors"
	"fmt"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/repository"
	"quizfy_backend/internal/util"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	pkgerrors "github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	colorTitle      = "111827"
	colorBar        = "1F2937"
	colorBlueHeader = "2563EB"
	colorBoxHeader  = "1F4E79"
	colorBorder     = "D1D5DB"

	reportTableStyle = "TableStyleMedium9"
	notGraded        = "Not Graded"
)

// ExportFile is a generated workbook ready to be streamed.
type ExportFile struct {
	Name string
	Data []byte
}

type ExportService struct {
	QuizRepo       *repository.QuizRepository
	QuestionRepo   *repository.QuestionRepository
	SubmissionRepo *repository.SubmissionRepository
	FolderRepo     *repository.FolderRepository
	UserRepo       *repository.UserRepository
	Now            func() time.Time
}

func NewExportService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	submissionRepo *repository.SubmissionRepository,
	folderRepo *repository.FolderRepository,
	userRepo *repository.UserRepository,
) *ExportService {
	return &ExportService{
		QuizRepo:       quizRepo,
		QuestionRepo:   questionRepo,
		SubmissionRepo: submissionRepo,
		FolderRepo:     folderRepo,
		UserRepo:       userRepo,
		Now:            time.Now,
	}
}

type reportStyles struct {
	title, subtitle, section int
	header                   int
	left, center             int
	label                    int
	percent                  int
}

// reportSheet wraps a single-sheet workbook. The first error is kept and
// every later call becomes a no-op, so builders only check it once.
type reportSheet struct {
	f      *excelize.File
	name   string
	st     reportStyles
	widths map[int]int
	err    error
}

func newReportSheet(name string, titleSize float64, headerColor, percentFormat string) (*reportSheet, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		f.Close()
		return nil, err
	}
	s := &reportSheet{f: f, name: name, widths: make(map[int]int)}

	border := []excelize.Border{
		{Type: "left", Color: colorBorder, Style: 1},
		{Type: "right", Color: colorBorder, Style: 1},
		{Type: "top", Color: colorBorder, Style: 1},
		{Type: "bottom", Color: colorBorder, Style: 1},
	}
	solid := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	left := &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true}

	s.st.title = s.style(&excelize.Style{Font: &excelize.Font{Bold: true, Size: titleSize, Color: "FFFFFF"}, Fill: solid(colorTitle), Alignment: center})
	s.st.subtitle = s.style(&excelize.Style{Font: &excelize.Font{Size: 10, Color: "FFFFFF"}, Fill: solid(colorBar), Alignment: center})
	s.st.section = s.style(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"}, Fill: solid(colorBar), Alignment: left})
	s.st.header = s.style(&excelize.Style{Font: &excelize.Font{Bold: true, Color: "FFFFFF"}, Fill: solid(headerColor), Alignment: center, Border: border})
	s.st.left = s.style(&excelize.Style{Alignment: left, Border: border})
	s.st.center = s.style(&excelize.Style{Alignment: center, Border: border})
	s.st.label = s.style(&excelize.Style{Font: &excelize.Font{Bold: true}, Alignment: left, Border: border})
	s.st.percent = s.style(&excelize.Style{Alignment: center, Border: border, CustomNumFmt: &percentFormat})
	if s.err != nil {
		f.Close()
		return nil, s.err
	}
	return s, nil
}

func (s *reportSheet) style(st *excelize.Style) int {
	if s.err != nil {
		return 0
	}
	id, err := s.f.NewStyle(st)
	s.err = err
	return id
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func columnName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

func (s *reportSheet) set(col, row int, value interface{}, style int) {
	if s.err != nil {
		return
	}
	cell := cellName(col, row)
	if s.err = s.f.SetCellValue(s.name, cell, value); s.err != nil {
		return
	}
	if style > 0 {
		s.err = s.f.SetCellStyle(s.name, cell, cell, style)
	}
	if value != nil {
		if n := utf8.RuneCountInString(fmt.Sprint(value)); n > s.widths[col] {
			s.widths[col] = n
		}
	}
}

func (s *reportSheet) row(row int, values []interface{}, styleFor func(col int) int) {
	for i, v := range values {
		s.set(i+1, row, v, styleFor(i+1))
	}
}

// banner writes text into a merged A..endCol band.
func (s *reportSheet) banner(row, endCol int, text string, style int, height float64) {
	if s.err != nil {
		return
	}
	if s.err = s.f.MergeCell(s.name, cellName(1, row), cellName(endCol, row)); s.err != nil {
		return
	}
	s.set(1, row, text, style)
	if s.err == nil && height > 0 {
		s.err = s.f.SetRowHeight(s.name, row, height)
	}
}

func (s *reportSheet) table(name string, headerRow, lastRow, endCol int) {
	if s.err != nil || lastRow <= headerRow {
		return
	}
	stripes := true
	s.err = s.f.AddTable(s.name, &excelize.Table{
		Range:          cellName(1, headerRow) + ":" + cellName(endCol, lastRow),
		Name:           name,
		StyleName:      reportTableStyle,
		ShowRowStripes: &stripes,
	})
}

// freeze keeps every row above firstDataRow visible.
func (s *reportSheet) freeze(firstDataRow int) {
	if s.err != nil {
		return
	}
	s.err = s.f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      firstDataRow - 1,
		TopLeftCell: cellName(1, firstDataRow),
		ActivePane:  "bottomLeft",
	})
}

func (s *reportSheet) finish(fileName string, maxWidth int) (*ExportFile, error) {
	defer s.f.Close()
	for col, w := range s.widths {
		if s.err != nil {
			break
		}
		width := w + 2
		if width > maxWidth {
			width = maxWidth
		}
		s.err = s.f.SetColWidth(s.name, columnName(col), columnName(col), float64(width))
	}
	if s.err != nil {
		return nil, s.err
	}
	buf, err := s.f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return &ExportFile{Name: fileName, Data: buf.Bytes()}, nil
}

func percentOf(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total)
}

func formatSubmittedAt(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(util.ShortTimeStamp)
}

// SafeTableName keeps letters and digits, maps the rest to underscores and
// caps the result at 50 characters.
func SafeTableName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	cleaned := b.String()
	if cleaned != "" && unicode.IsDigit([]rune(cleaned)[0]) {
		cleaned = "T_" + cleaned
	}
	return util.Truncate(cleaned, 50)
}

// uniqueHeaders suffixes repeated labels; table headers must be distinct.
func uniqueHeaders(headers []string) []string {
	seen := make(map[string]int, len(headers))
	out := make([]string, len(headers))
	for i, h := range headers {
		seen[h]++
		if seen[h] > 1 {
			h = h + " " + strconv.Itoa(seen[h])
		}
		out[i] = h
	}
	return out
}

func toValues(headers []string) []interface{} {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	return values
}

// latestPerStudent keeps the first row per student from a newest-first list.
// Rows are keyed by student account, or by display name for legacy rows.
func latestPerStudent(subs []model.Submission) []model.Submission {
	seen := make(map[string]bool)
	var out []model.Submission
	for _, sub := range subs {
		key := ""
		if sub.StudentUserID != nil {
			key = "u:" + strconv.FormatUint(uint64(*sub.StudentUserID), 10)
		} else if name := strings.ToLower(strings.TrimSpace(sub.StudentName)); name != "" {
			key = "n:" + name
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, sub)
	}
	return out
}

func fileGradesBySubmission(files []model.FileSubmission) map[uint]map[uint]string {
	out := make(map[uint]map[uint]string)
	for _, fs := range files {
		if fs.QuestionID == nil {
			continue
		}
		if out[fs.SubmissionID] == nil {
			out[fs.SubmissionID] = make(map[uint]string)
		}
		out[fs.SubmissionID][*fs.QuestionID] = fs.Grade
	}
	return out
}

func submissionIDs(subs []model.Submission) []uint {
	ids := make([]uint, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.ID)
	}
	return ids
}

func (s *ExportService) teacherFolder(folderID, teacherID uint) (*model.SubjectFolder, error) {
	folder, err := s.FolderRepo.FindForTeacher(folderID, teacherID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrFolderNotFound
	}
	return folder, err
}

// SubmissionsReport lists every submitted attempt of a quiz, newest first.
func (s *ExportService) SubmissionsReport(quizID, teacherID uint, teacherName string) (*ExportFile, error) {
	quiz, err := s.QuizRepo.FindForTeacher(quizID, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	questions, err := s.QuestionRepo.ListByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}
	var fileQuestions []model.Question
	for _, q := range questions {
		if q.IsFileUpload() {
			fileQuestions = append(fileQuestions, q)
		}
	}
	subs, err := s.SubmissionRepo.ListSubmittedByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}
	files, err := s.SubmissionRepo.FileSubmissionsFor(submissionIDs(subs))
	if err != nil {
		return nil, err
	}
	grades := fileGradesBySubmission(files)

	sh, err := newReportSheet("Submissions", 18, colorBlueHeader, "0.0%")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create submissions workbook")
	}

	headers := []string{"Student Full Name", "University ID", "Score", "Total", "Percentage", "Submitted At"}
	for _, q := range fileQuestions {
		label := util.Truncate(q.Text, 15)
		if q.Text == "" {
			label = fmt.Sprintf("Q%d", q.ID)
		}
		headers = append(headers, fmt.Sprintf("File Grade (%s)", label))
	}
	headers = uniqueHeaders(headers)
	endCol := len(headers)

	sh.banner(1, endCol, "Quiz Submissions Report", sh.st.title, 30)
	sh.banner(2, endCol, fmt.Sprintf("Quiz: %s  |  Code: %s  |  Generated: %s  |  Teacher: %s",
		quiz.Title, quiz.Code, s.Now().Format(util.ShortTimeStamp), teacherName), sh.st.subtitle, 18)

	const headerRow = 4
	sh.row(headerRow, toValues(headers), func(int) int { return sh.st.header })

	row := headerRow + 1
	for i := range subs {
		sub := &subs[i]
		name, universityID := studentInfo(sub)
		values := []interface{}{name, universityID, sub.Score, sub.Total, percentOf(sub.Score, sub.Total), formatSubmittedAt(sub.SubmittedAt)}
		for _, q := range fileQuestions {
			grade := grades[sub.ID][q.ID]
			if grade == "" {
				grade = notGraded
			}
			values = append(values, grade)
		}
		sh.row(row, values, func(col int) int {
			switch col {
			case 1:
				return sh.st.left
			case 5:
				return sh.st.percent
			}
			return sh.st.center
		})
		row++
	}

	sh.table(fmt.Sprintf("QuizSubs%d", quiz.ID), headerRow, row-1, endCol)
	sh.freeze(headerRow + 1)

	out, err := sh.finish(fmt.Sprintf("%s_submissions_report.xlsx", quiz.Code), 45)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "build submissions report for quiz %d", quiz.ID)
	}
	return out, nil
}

// FolderBoxesReport writes one box per quiz of the folder with a column per
// question, using each student's latest submitted attempt.
func (s *ExportService) FolderBoxesReport(folderID, teacherID uint, teacherName string) (*ExportFile, error) {
	folder, err := s.teacherFolder(folderID, teacherID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.QuizRepo.ListByFolder(folder.ID, true)
	if err != nil {
		return nil, err
	}
	quizIDs := make([]uint, 0, len(quizzes))
	for _, q := range quizzes {
		quizIDs = append(quizIDs, q.ID)
	}
	questions, err := s.QuestionRepo.ListByQuizzes(quizIDs)
	if err != nil {
		return nil, err
	}
	questionsByQuiz := make(map[uint][]model.Question)
	for _, q := range questions {
		questionsByQuiz[q.QuizID] = append(questionsByQuiz[q.QuizID], q)
	}
	subs, err := s.SubmissionRepo.ListSubmittedByQuizzes(quizIDs)
	if err != nil {
		return nil, err
	}
	subsByQuiz := make(map[uint][]model.Submission)
	for _, sub := range subs {
		subsByQuiz[sub.QuizID] = append(subsByQuiz[sub.QuizID], sub)
	}
	ids := submissionIDs(subs)
	answers, err := s.SubmissionRepo.AnswersFor(ids)
	if err != nil {
		return nil, err
	}
	correct := make(map[uint]map[uint]bool)
	for _, a := range answers {
		if correct[a.SubmissionID] == nil {
			correct[a.SubmissionID] = make(map[uint]bool)
		}
		correct[a.SubmissionID][a.QuestionID] = a.IsCorrect
	}
	files, err := s.SubmissionRepo.FileSubmissionsFor(ids)
	if err != nil {
		return nil, err
	}
	grades := fileGradesBySubmission(files)

	sh, err := newReportSheet("Folder Boxes", 16, colorBoxHeader, "0.00%")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create folder boxes workbook")
	}

	sh.banner(1, 26, "Subject Folder Boxes Report — "+folder.Name, sh.st.title, 28)
	sh.banner(2, 26, fmt.Sprintf("Generated: %s | Teacher: %s", s.Now().Format(util.ShortTimeStamp), teacherName), sh.st.subtitle, 18)

	row := 4
	for _, quiz := range quizzes {
		qs := questionsByQuiz[quiz.ID]
		headers := []string{"Student Full Name", "University ID", "Score", "Total", "Percentage"}
		for i := range qs {
			headers = append(headers, fmt.Sprintf("Q%d", i+1))
		}
		for i, q := range qs {
			if q.IsFileUpload() {
				headers = append(headers, fmt.Sprintf("File Grade (Q%d)", i+1))
			}
		}
		endCol := len(headers)

		sh.banner(row, endCol, fmt.Sprintf("%s   (Code: %s)", quiz.Title, quiz.Code), sh.st.section, 0)
		row++
		headerRow := row
		sh.row(headerRow, toValues(headers), func(int) int { return sh.st.header })
		row++

		latest := latestPerStudent(subsByQuiz[quiz.ID])
		sort.SliceStable(latest, func(i, j int) bool {
			a, _ := studentInfo(&latest[i])
			b, _ := studentInfo(&latest[j])
			return strings.ToLower(a) < strings.ToLower(b)
		})
		if len(latest) == 0 {
			sh.set(1, row, "No submissions", sh.st.left)
			row += 3
			continue
		}

		for i := range latest {
			sub := &latest[i]
			name, universityID := studentInfo(sub)
			values := []interface{}{name, universityID, sub.Score, sub.Total, percentOf(sub.Score, sub.Total)}
			for _, q := range qs {
				got, ok := correct[sub.ID][q.ID]
				switch {
				case !ok || q.IsFileUpload():
					values = append(values, "")
				case got:
					values = append(values, 1)
				default:
					values = append(values, 0)
				}
			}
			for _, q := range qs {
				if !q.IsFileUpload() {
					continue
				}
				grade := grades[sub.ID][q.ID]
				if grade == "" {
					grade = notGraded
				}
				values = append(values, grade)
			}
			sh.row(row, values, func(col int) int {
				switch {
				case col == 5:
					return sh.st.percent
				case col >= 4:
					return sh.st.center
				}
				return sh.st.left
			})
			row++
		}
		sh.table(SafeTableName(fmt.Sprintf("Quiz_%d_%s", quiz.ID, quiz.Code)), headerRow, row-1, endCol)
		row += 2
	}
	sh.freeze(4)

	name := strings.ReplaceAll(folder.Name+"_BOXES_report.xlsx", " ", "_")
	out, err := sh.finish(name, 35)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "build boxes report for folder %d", folder.ID)
	}
	return out, nil
}

// StudentReport summarizes one student's latest attempt per quiz of a folder.
func (s *ExportService) StudentReport(folderID, studentID, teacherID uint) (*ExportFile, error) {
	folder, err := s.teacherFolder(folderID, teacherID)
	if err != nil {
		return nil, err
	}
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	profile, err := s.UserRepo.FindProfileByUserID(student.ID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.QuizRepo.ListByFolder(folder.ID, true)
	if err != nil {
		return nil, err
	}
	quizIDs := make([]uint, 0, len(quizzes))
	for _, q := range quizzes {
		quizIDs = append(quizIDs, q.ID)
	}
	subs, err := s.SubmissionRepo.ListSubmittedForStudent(quizIDs, student.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	var latest []model.Submission
	for _, sub := range subs {
		if !seen[sub.QuizID] {
			seen[sub.QuizID] = true
			latest = append(latest, sub)
		}
	}
	quizTitle := func(sub *model.Submission) string {
		if sub.Quiz == nil {
			return ""
		}
		return sub.Quiz.Title
	}
	sort.SliceStable(latest, func(i, j int) bool {
		return strings.ToLower(quizTitle(&latest[i])) < strings.ToLower(quizTitle(&latest[j]))
	})

	files, err := s.SubmissionRepo.FileSubmissionsFor(submissionIDs(latest))
	if err != nil {
		return nil, err
	}
	gradeList := make(map[uint][]string)
	for _, fs := range files {
		if fs.Grade != "" {
			gradeList[fs.SubmissionID] = append(gradeList[fs.SubmissionID], fs.Grade)
		}
	}

	sh, err := newReportSheet("Student Report", 18, colorBlueHeader, "0.0%")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create student workbook")
	}

	sh.banner(1, 6, "Student Performance Report", sh.st.title, 30)
	sh.banner(2, 6, fmt.Sprintf("Subject Folder: %s   |   Generated: %s", folder.Name, s.Now().Format(util.ShortTimeStamp)), sh.st.subtitle, 18)
	sh.banner(4, 6, "Student Info", sh.st.section, 18)

	fullName, universityID, city, major := student.Username, "", "", ""
	fileID := strconv.FormatUint(uint64(student.ID), 10)
	if profile != nil {
		fullName = strings.TrimSpace(profile.FirstName + " " + profile.SecondName + " " + profile.ThirdName)
		universityID, city, major = profile.UniversityID, profile.City, profile.MajorName()
		fileID = profile.UniversityID
	}
	info := [][2]string{
		{"Student Full Name", fullName},
		{"University ID", universityID},
		{"City", city},
		{"Major", major},
	}
	row := 5
	for _, kv := range info {
		sh.set(1, row, kv[0], sh.st.label)
		sh.set(2, row, kv[1], sh.st.left)
		row++
	}

	sectionRow := row + 1
	sh.banner(sectionRow, 7, "Quiz Results (This Folder)", sh.st.section, 18)
	headerRow := sectionRow + 1
	headers := []string{"Quiz Title", "Quiz Code", "Score", "Total", "Percentage", "File Grades", "Submitted At"}
	sh.row(headerRow, toValues(headers), func(int) int { return sh.st.header })

	row = headerRow + 1
	for i := range latest {
		sub := &latest[i]
		code := ""
		if sub.Quiz != nil {
			code = sub.Quiz.Code
		}
		fileGrades := "N/A"
		if g := gradeList[sub.ID]; len(g) > 0 {
			fileGrades = strings.Join(g, ", ")
		}
		values := []interface{}{quizTitle(sub), code, sub.Score, sub.Total, percentOf(sub.Score, sub.Total), fileGrades, formatSubmittedAt(sub.SubmittedAt)}
		sh.row(row, values, func(col int) int {
			switch col {
			case 1, 7:
				return sh.st.left
			case 5:
				return sh.st.percent
			}
			return sh.st.center
		})
		row++
	}
	sh.table("StudentQuizResults", headerRow, row-1, len(headers))
	sh.freeze(headerRow + 1)

	name := strings.ReplaceAll(fmt.Sprintf("%s_%s_report.xlsx", folder.Name, fileID), " ", "_")
	out, err := sh.finish(name, 45)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "build student report for folder %d", folder.ID)
	}
	return out, nil
}

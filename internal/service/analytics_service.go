package service

import (
	"context"
	"fmt"
	"math"
	"quizfy_backend/internal/model"
	"quizfy_backend/internal/repository"
	"quizfy_backend/internal/util"
	"quizfy_backend/pkg/logger"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	difficultErrorRate   = 30.0
	strugglingPercentage = 60.0
	maxDifficultShown    = 15
	maxDifficultPrompt   = 10
	maxStrugglingPrompt  = 5
)

type QuestionStat struct {
	QuestionID    uint    `json:"questionId"`
	Text          string  `json:"text"`
	QuizTitle     string  `json:"quizTitle"`
	QuestionType  string  `json:"questionType"`
	TotalAttempts int     `json:"totalAttempts"`
	WrongCount    int     `json:"wrongCount"`
	ErrorRate     float64 `json:"errorRate"`
}

type StudentPerformance struct {
	StudentID      uint    `json:"studentId"`
	Name           string  `json:"name"`
	TotalQuestions int     `json:"totalQuestions"`
	Correct        int     `json:"correct"`
	Percentage     float64 `json:"percentage"`
}

type AIAnalysis struct {
	Error    bool   `json:"error"`
	Message  string `json:"message,omitempty"`
	Analysis string `json:"analysis,omitempty"`
}

type FolderAnalytics struct {
	Folder                 *model.SubjectFolder `json:"folder"`
	DifficultQuestions     []QuestionStat       `json:"difficultQuestions"`
	Students               []StudentPerformance `json:"students"`
	TotalSubmissions       int                  `json:"totalSubmissions"`
	TotalQuestionsAnalyzed int                  `json:"totalQuestionsAnalyzed"`
	AIAnalysis             *AIAnalysis          `json:"aiAnalysis,omitempty"`

	allDifficult []QuestionStat
}

type AnalyticsService struct {
	Folders        *FolderService
	QuizRepo       *repository.QuizRepository
	QuestionRepo   *repository.QuestionRepository
	SubmissionRepo *repository.SubmissionRepository
	AI             *AIService
}

func NewAnalyticsService(
	folders *FolderService,
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	submissionRepo *repository.SubmissionRepository,
	ai *AIService,
) *AnalyticsService {
	return &AnalyticsService{
		Folders:        folders,
		QuizRepo:       quizRepo,
		QuestionRepo:   questionRepo,
		SubmissionRepo: submissionRepo,
		AI:             ai,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FolderAnalytics computes error rates over the auto-graded answers of every
// submitted attempt in the folder. With analyze set, it also asks the AI
// backend for a weak-topic report.
func (s *AnalyticsService) FolderAnalytics(ctx context.Context, folderID, teacherID uint, analyze bool) (*FolderAnalytics, error) {
	folder, err := s.Folders.Get(folderID, teacherID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.QuizRepo.ListByFolder(folder.ID, true)
	if err != nil {
		return nil, err
	}
	quizIDs := make([]uint, 0, len(quizzes))
	titles := make(map[uint]string, len(quizzes))
	for _, q := range quizzes {
		quizIDs = append(quizIDs, q.ID)
		titles[q.ID] = q.Title
	}

	questions, err := s.QuestionRepo.ListByQuizzes(quizIDs)
	if err != nil {
		return nil, err
	}
	questionByID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		questionByID[questions[i].ID] = &questions[i]
	}

	subs, err := s.SubmissionRepo.ListSubmittedByQuizzes(quizIDs)
	if err != nil {
		return nil, err
	}
	subIDs := make([]uint, 0, len(subs))
	for _, sub := range subs {
		subIDs = append(subIDs, sub.ID)
	}
	answers, err := s.SubmissionRepo.AnswersFor(subIDs)
	if err != nil {
		return nil, err
	}
	answersBySub := make(map[uint][]model.Answer)
	for _, a := range answers {
		answersBySub[a.SubmissionID] = append(answersBySub[a.SubmissionID], a)
	}

	stats := make(map[uint]*QuestionStat)
	var statOrder []uint
	perf := make(map[uint]*StudentPerformance)
	var perfOrder []uint

	for i := range subs {
		sub := &subs[i]
		var sid uint
		if sub.StudentUserID != nil {
			sid = *sub.StudentUserID
		}
		p, ok := perf[sid]
		if !ok {
			name := sub.StudentName
			if sub.StudentUser != nil && sub.StudentUser.Profile != nil {
				name = strings.TrimSpace(sub.StudentUser.Profile.FirstName + " " + sub.StudentUser.Profile.SecondName)
			}
			p = &StudentPerformance{StudentID: sid, Name: name}
			perf[sid] = p
			perfOrder = append(perfOrder, sid)
		}

		for _, a := range answersBySub[sub.ID] {
			q := questionByID[a.QuestionID]
			if q == nil || q.IsFileUpload() {
				continue
			}
			p.TotalQuestions++
			st, ok := stats[q.ID]
			if !ok {
				st = &QuestionStat{
					QuestionID:   q.ID,
					Text:         util.Truncate(q.Text, 100),
					QuizTitle:    titles[q.QuizID],
					QuestionType: string(q.QuestionType),
				}
				stats[q.ID] = st
				statOrder = append(statOrder, q.ID)
			}
			st.TotalAttempts++
			if a.IsCorrect {
				p.Correct++
			} else {
				st.WrongCount++
			}
		}
	}

	result := &FolderAnalytics{Folder: folder, DifficultQuestions: []QuestionStat{}, Students: []StudentPerformance{}}
	for _, id := range statOrder {
		st := stats[id]
		result.TotalQuestionsAnalyzed += st.TotalAttempts
		if st.TotalAttempts == 0 {
			continue
		}
		rate := float64(st.WrongCount) / float64(st.TotalAttempts) * 100
		st.ErrorRate = round1(rate)
		if rate > difficultErrorRate {
			result.allDifficult = append(result.allDifficult, *st)
		}
	}
	sort.SliceStable(result.allDifficult, func(i, j int) bool {
		return result.allDifficult[i].ErrorRate > result.allDifficult[j].ErrorRate
	})
	if len(result.allDifficult) > maxDifficultShown {
		result.DifficultQuestions = append(result.DifficultQuestions, result.allDifficult[:maxDifficultShown]...)
	} else {
		result.DifficultQuestions = append(result.DifficultQuestions, result.allDifficult...)
	}

	for _, sid := range perfOrder {
		p := perf[sid]
		if p.TotalQuestions == 0 {
			continue
		}
		p.Percentage = round1(float64(p.Correct) / float64(p.TotalQuestions) * 100)
		result.Students = append(result.Students, *p)
	}
	sort.SliceStable(result.Students, func(i, j int) bool {
		return result.Students[i].Percentage < result.Students[j].Percentage
	})
	result.TotalSubmissions = len(result.Students)

	if analyze {
		result.AIAnalysis = s.analyze(ctx, folder.Name, result)
	}
	return result, nil
}

const analystSystemPrompt = "You are an expert educational analyst who helps teachers identify learning gaps and improve student outcomes."

// BuildAnalysisPrompt renders the data the AI backend sees.
func BuildAnalysisPrompt(folderName string, difficult []QuestionStat, students []StudentPerformance) string {
	var dq strings.Builder
	for i, q := range difficult {
		if i == maxDifficultPrompt {
			break
		}
		fmt.Fprintf(&dq, "- Question: '%s' (from %s) - %.1f%% error rate\n", q.Text, q.QuizTitle, q.ErrorRate)
	}
	var st strings.Builder
	n := 0
	for _, s := range students {
		if s.Percentage >= strugglingPercentage {
			continue
		}
		if n == maxStrugglingPrompt {
			break
		}
		fmt.Fprintf(&st, "- %s: %.1f%% correct (%d/%d)\n", s.Name, s.Percentage, s.Correct, s.TotalQuestions)
		n++
	}

	difficultText := strings.TrimRight(dq.String(), "\n")
	if difficultText == "" {
		difficultText = "No significant difficulty patterns found."
	}
	studentText := strings.TrimRight(st.String(), "\n")
	if studentText == "" {
		studentText = "No students below 60% threshold."
	}

	return fmt.Sprintf(`You are an educational analyst. Analyze the following quiz performance data for the subject folder "%s".

MOST DIFFICULT QUESTIONS (highest error rates):
%s

STRUGGLING STUDENTS (below 60%%):
%s

Based on this data, provide:
1. **Key Weak Topics**: Identify 3-5 specific topics or concepts students are struggling with based on the questions they got wrong.
2. **Root Cause Analysis**: What underlying concepts might students be missing?
3. **Recommendations**: Specific teaching strategies or resources to address these gaps.
4. **Priority Actions**: What should the teacher focus on immediately?

Be specific and actionable. Use the actual question content to identify patterns.`, folderName, difficultText, studentText)
}

// analyze never fails the request; errors become part of the payload.
func (s *AnalyticsService) analyze(ctx context.Context, folderName string, data *FolderAnalytics) *AIAnalysis {
	if s.AI == nil || !s.AI.Enabled() {
		return &AIAnalysis{Error: true, Message: "AI analysis unavailable: OPENAI_API_KEY is not configured."}
	}
	prompt := BuildAnalysisPrompt(folderName, data.allDifficult, data.Students)
	text, err := s.AI.Chat(ctx, analystSystemPrompt, prompt)
	if err != nil {
		logger.Log.Warn("AI analysis failed", zap.String("folder", folderName), zap.Error(err))
		return &AIAnalysis{Error: true, Message: "AI analysis unavailable: " + err.Error()}
	}
	return &AIAnalysis{Analysis: text}
}

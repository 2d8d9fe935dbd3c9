package examController

import (
	"strconv"
	"testing"

	examModels "campus/models/exam"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func question(id uint, qtype, correct string, points int) examModels.Question {
	return examModels.Question{
		Model:         gorm.Model{ID: id},
		Type:          qtype,
		CorrectAnswer: correct,
		Points:        points,
	}
}

func TestGradeSubmission_PartialCredit(t *testing.T) {
	questions := []examModels.Question{
		question(1, examModels.QuestionTypeMCQ, "A", 5),
		question(2, examModels.QuestionTypeMCQ, "B", 5),
	}
	answers := map[string]string{"1": "A", "2": "C"}

	score, total := GradeSubmission(questions, answers)

	assert.Equal(t, 5, score)
	assert.Equal(t, 10, total)
}

func TestGradeSubmission_Deterministic(t *testing.T) {
	questions := []examModels.Question{
		question(1, examModels.QuestionTypeMCQ, "A", 5),
		question(2, examModels.QuestionTypeTF, "true", 3),
		question(3, examModels.QuestionTypeShort, "", 2),
	}
	answers := map[string]string{"1": "A", "2": "false", "3": "an essay"}

	s1, t1 := GradeSubmission(questions, answers)
	s2, t2 := GradeSubmission(questions, answers)

	assert.Equal(t, s1, s2)
	assert.Equal(t, t1, t2)
}

func TestGradeSubmission_ShortNeverAutoScored(t *testing.T) {
	questions := []examModels.Question{
		question(1, examModels.QuestionTypeShort, "the answer", 10),
	}
	answers := map[string]string{"1": "the answer"}

	score, total := GradeSubmission(questions, answers)

	assert.Equal(t, 0, score)
	assert.Equal(t, 10, total)
}

func TestGradeSubmission_UnansweredStillCountTowardTotal(t *testing.T) {
	questions := []examModels.Question{
		question(1, examModels.QuestionTypeMCQ, "A", 5),
		question(2, examModels.QuestionTypeTF, "false", 5),
		question(3, examModels.QuestionTypeMCQ, "D", 5),
	}
	answers := map[string]string{"1": "A"}

	score, total := GradeSubmission(questions, answers)

	assert.Equal(t, 5, score)
	assert.Equal(t, 15, total)
}

func TestGradeSubmission_ExactStringMatch(t *testing.T) {
	questions := []examModels.Question{
		question(1, examModels.QuestionTypeMCQ, "A", 5),
	}

	for submitted, want := range map[string]int{
		"A":  5,
		"a":  0,
		" A": 0,
		"":   0,
	} {
		score, _ := GradeSubmission(questions, map[string]string{"1": submitted})
		assert.Equalf(t, want, score, "submitted %q", submitted)
	}
}

func TestGradeSubmission_EmptyExam(t *testing.T) {
	score, total := GradeSubmission(nil, map[string]string{"1": "A"})

	assert.Equal(t, 0, score)
	assert.Equal(t, 0, total)
}

func TestGradeSubmission_AnswerKeysAreQuestionIDs(t *testing.T) {
	questions := []examModels.Question{
		question(17, examModels.QuestionTypeMCQ, "B", 4),
	}
	answers := map[string]string{strconv.Itoa(17): "B"}

	score, total := GradeSubmission(questions, answers)

	assert.Equal(t, 4, score)
	assert.Equal(t, 4, total)
}

package examController

import (
	"strconv"

	"campus/models/exam"
)

// GradeSubmission scores an answer map against an exam's question set.
//
// Multiple-choice and true/false questions award their full point value on
// an exact string match with the stored key, zero otherwise. Short-answer
// questions are never auto-scored. The returned total counts every
// question's points whether or not it was answered, so the same question
// set always produces the same denominator.
func GradeSubmission(questions []exam.Question, answers map[string]string) (score int, totalMarks int) {
	for _, q := range questions {
		totalMarks += q.Points

		switch q.Type {
		case exam.QuestionTypeMCQ, exam.QuestionTypeTF:
			submitted, ok := answers[strconv.FormatUint(uint64(q.ID), 10)]
			if ok && submitted == q.CorrectAnswer {
				score += q.Points
			}
		}
	}
	return score, totalMarks
}

package examValidator

import (
	"campus/middleware"
	"campus/models/exam"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type OptionInput struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type QuestionInput struct {
	Text    string        `json:"text"`
	Type    string        `json:"type"`
	Points  int           `json:"points"`
	Correct string        `json:"correct"`
	Options []OptionInput `json:"options"`
}

type CreateExamRequest struct {
	Title           string          `json:"title"`
	Instructions    string          `json:"instructions"`
	DurationMinutes int             `json:"duration_minutes"`
	PassMarks       int             `json:"pass_marks"`
	Questions       []QuestionInput `json:"questions"`
}

// CreateExam validator middleware
func CreateExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateExamRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Title) == "" {
			reqData.Title = "Final Examination"
		}
		if reqData.DurationMinutes <= 0 {
			reqData.DurationMinutes = 60
		}

		errors := make(map[string]string)

		for i := range reqData.Questions {
			q := &reqData.Questions[i]

			if strings.TrimSpace(q.Text) == "" {
				errors["questions"] = "Every question needs text!"
				break
			}
			if !exam.ValidQuestionType(q.Type) {
				errors["questions"] = "Question type must be mcq, tf or short!"
				break
			}
			if q.Points <= 0 {
				q.Points = 1
			}

			switch q.Type {
			case exam.QuestionTypeMCQ:
				if len(q.Options) < 2 {
					errors["questions"] = "MCQ questions need at least two options!"
				} else if q.Correct == "" {
					errors["questions"] = "MCQ questions need a correct option label!"
				}
			case exam.QuestionTypeTF:
				// Accept booleans serialized any which way
				switch strings.ToLower(q.Correct) {
				case "true", "false":
					q.Correct = strings.ToLower(q.Correct)
				default:
					errors["questions"] = "True/false questions need correct set to true or false!"
				}
			}
			if len(errors) > 0 {
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExam", reqData)
		return c.Next()
	}
}

type SubmitExamRequest struct {
	Answers map[string]string `json:"answers"`
}

// SubmitExam validator middleware
func SubmitExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitExamRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Answers == nil {
			reqData.Answers = map[string]string{}
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}

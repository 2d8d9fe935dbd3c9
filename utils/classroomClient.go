package utils

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// ClassroomCourse is the slice of a Google Classroom course we care about
type ClassroomCourse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Section        string `json:"section"`
	EnrollmentCode string `json:"enrollmentCode"`
	CourseState    string `json:"courseState"`
	AlternateLink  string `json:"alternateLink"`
}

type classroomCourseList struct {
	Courses []ClassroomCourse `json:"courses"`
}

// FetchClassroomCourses lists the caller's Google Classroom courses.
func FetchClassroomCourses(accessToken string) ([]ClassroomCourse, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	client := resty.New()

	var result classroomCourseList
	resp, err := client.R().
		SetAuthToken(accessToken).
		SetQueryParam("courseStates", "ACTIVE").
		SetResult(&result).
		Get("https://classroom.googleapis.com/v1/courses")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %v", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("classroom API error: %s", resp.String())
	}

	return result.Courses, nil
}

// ClassroomAnnouncement is one announcement from a Classroom course stream
type ClassroomAnnouncement struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	CreationTime string `json:"creationTime"`
}

type classroomAnnouncementList struct {
	Announcements []ClassroomAnnouncement `json:"announcements"`
}

// FetchClassroomAnnouncements lists a course's stream announcements.
func FetchClassroomAnnouncements(accessToken, courseID string) ([]ClassroomAnnouncement, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	client := resty.New()

	var result classroomAnnouncementList
	resp, err := client.R().
		SetAuthToken(accessToken).
		SetResult(&result).
		Get(fmt.Sprintf("https://classroom.googleapis.com/v1/courses/%s/announcements", courseID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch announcements: %v", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("classroom API error: %s", resp.String())
	}

	return result.Announcements, nil
}

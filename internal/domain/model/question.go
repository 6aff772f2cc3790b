package model

import "time"

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "Easy"
	DifficultyMedium QuestionDifficulty = "Medium"
	DifficultyHard   QuestionDifficulty = "Hard"
)

// Question is the shape LeetCode's randomQuestion query returns. It is never
// mutated locally; only its slug is persisted.
type Question struct {
	QuestionID    string             `json:"questionId"`
	Title         string             `json:"title"`
	TitleSlug     string             `json:"titleSlug"`
	Difficulty    QuestionDifficulty `json:"difficulty"`
	Likes         int                `json:"likes"`
	Dislikes      int                `json:"dislikes"`
	IsPaidOnly    bool               `json:"isPaidOnly"`
	CategoryTitle string             `json:"categoryTitle"`
	Content       string             `json:"content"`
}

// URL is the public problem page for the question.
func (q Question) URL() string {
	return "https://leetcode.com/problems/" + q.TitleSlug + "/"
}

// Submission is one accepted submission from recentAcSubmissionList.
// Read-only, never persisted.
type Submission struct {
	TitleSlug   string
	SubmittedAt time.Time
}

// LoggedQuestion is a row of the persisted question log.
type LoggedQuestion struct {
	ID        int
	Slug      string
	CreatedAt time.Time
}

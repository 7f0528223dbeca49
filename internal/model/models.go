package model

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&StudentProfile{},
		&SubjectFolder{},
		&Quiz{},
		&Question{},
		&Submission{},
		&Answer{},
		&FileSubmission{},
		&QuizAttemptPermission{},
	}
}

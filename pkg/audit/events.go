package audit

import "fmt"

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RegisterEvent records a user registration attempt
type RegisterEvent struct {
	UserIndex    string
	Email        string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e RegisterEvent) MessageID() string {
	return "register"
}

func (e RegisterEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s registered as user %s", e.Email, e.UserIndex)
	}
	msg := fmt.Sprintf("%s failed to register", e.Email)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RegisterEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e RegisterEvent) Facility() int {
	return FacilityLocal0
}

func (e RegisterEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"email": e.Email,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "register",
			"result":    result(e.Success),
		},
	}
	if e.UserIndex != "" {
		sd[SDIDUser] = map[string]string{"index": e.UserIndex}
	}
	return sd
}

// LecturerEvent records a lecturer being added
type LecturerEvent struct {
	LecturerID string
	Name       string
	Department string
	Subject    string
	ClientIP   string
}

func (e LecturerEvent) MessageID() string {
	return "lecturer"
}

func (e LecturerEvent) Message() string {
	return fmt.Sprintf("added lecturer %s (%s, %s)", e.LecturerID, e.Name, e.Department)
}

func (e LecturerEvent) Severity() Severity {
	return SeverityNotice
}

func (e LecturerEvent) Facility() int {
	return FacilityLocal0
}

func (e LecturerEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"lecturer": e.LecturerID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "add-lecturer",
			"result":    "success",
		},
	}
	if e.Subject != "" {
		sd[SDIDUser] = map[string]string{"admin": e.Subject}
	}
	return sd
}

// EvaluationEvent records an evaluation submission attempt
type EvaluationEvent struct {
	UserIndex    string
	LecturerID   string
	Rating       int
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e EvaluationEvent) MessageID() string {
	return "evaluate"
}

func (e EvaluationEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("user %s rated lecturer %s with %d", e.UserIndex, e.LecturerID, e.Rating)
	}
	msg := fmt.Sprintf("user %s tried to evaluate lecturer %s", e.UserIndex, e.LecturerID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e EvaluationEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e EvaluationEvent) Facility() int {
	return FacilityLocal0
}

func (e EvaluationEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDUser: {
			"index": e.UserIndex,
		},
		SDIDSubject: {
			"lecturer": e.LecturerID,
			"rating":   fmt.Sprintf("%d", e.Rating),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "evaluate",
			"result":    result(e.Success),
		},
	}
}

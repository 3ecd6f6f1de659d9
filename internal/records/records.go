package records

// Column names of the candidate table. The order is the on-disk contract:
// HR people open this file in a spreadsheet, so it never changes.
const (
	FieldUserID               = "user_id"
	FieldFullName             = "full_name"
	FieldUsername             = "username"
	FieldDate                 = "date"
	FieldStatus               = "status"
	FieldVacancy              = "vacancy"
	FieldImportant            = "important"
	FieldSalaryExpectations   = "salary_expectations"
	FieldInterviewDate        = "interview_date"
	FieldDesiredInterviewTime = "desired_interview_time"
	FieldReason               = "reason"
	FieldRefusalReason        = "refusal_reason"
	FieldFinalRejectionReason = "final_rejection_reason"
)

// Columns lists all table columns in their fixed order, identity first.
var Columns = []string{
	FieldUserID,
	FieldFullName,
	FieldUsername,
	FieldDate,
	FieldStatus,
	FieldVacancy,
	FieldImportant,
	FieldSalaryExpectations,
	FieldInterviewDate,
	FieldDesiredInterviewTime,
	FieldReason,
	FieldRefusalReason,
	FieldFinalRejectionReason,
}

// Candidate lifecycle statuses, stored as-is in the status column.
const (
	StatusNew               = "Новый"
	StatusReviewing         = "Ознакомление"
	StatusCandidateDeclined = "Отказ кандидата"
	StatusInvited           = "Приглашение"
	StatusInterviewHR       = "Интервью HR"
	StatusFollowUp          = "Связаться"
	StatusAccepted          = "Принят"
	StatusRejected          = "Непринят"
)

// Fields is a sparse set of column updates passed to Upsert.
type Fields map[string]string

// Record is one materialized row keyed by column name.
type Record map[string]string

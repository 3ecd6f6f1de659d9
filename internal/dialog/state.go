package dialog

// State is the position of one candidate (or one HR operator) inside the
// intake conversation. A missing session means StateIdle.
type State string

const (
	// StateIdle indicates no dialog is in progress.
	StateIdle State = "idle"
	// StateChooseVacancy indicates the candidate was shown the openings list.
	StateChooseVacancy State = "choose_vacancy"
	// StateInterest indicates the candidate was asked whether the opening interests them.
	StateInterest State = "interest"
	// StateDeclineReason indicates the bot is waiting for the reason the opening was declined.
	StateDeclineReason State = "decline_reason"
	// StateMainQuestion indicates the bot is waiting for the "what matters most" answer.
	StateMainQuestion State = "main_question"
	// StateSalaryQuestion indicates the bot is waiting for the salary expectation.
	StateSalaryQuestion State = "salary_question"
	// StateInterviewOffer indicates an interview slot was offered and awaits confirmation.
	StateInterviewOffer State = "interview_offer"
	// StateRescheduleOrNever indicates the candidate declined the slot and may
	// type a preferred time or refuse permanently.
	StateRescheduleOrNever State = "reschedule_or_never"
	// StatePermanentRefusal indicates the bot is waiting for the permanent-refusal reason.
	StatePermanentRefusal State = "permanent_refusal"
	// StateFinalRejection indicates an HR operator is typing the final
	// rejection reason for the candidate carried in the session.
	StateFinalRejection State = "final_rejection"

	// stateAny marks transition rules valid regardless of the current state.
	stateAny State = "*"
)

// session is the per-identity dialog position. target carries the candidate
// id an HR operator is deciding on during the final-rejection flow.
type session struct {
	state  State
	target int64
}

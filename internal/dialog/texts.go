package dialog

// User-facing copy. Kept in one place so wording changes never touch the
// transition logic.
const (
	textStart = "Здравствуйте, %s! 👋\n\nЯ помогу вам откликнуться на наши открытые вакансии и отвечу на пару вопросов о вас."

	textNoVacancies = "Нет подходящих вакансий."

	textVacancyNotFound = "Вакансия не найдена."

	textVacancyInfo = "Отличный выбор! Несколько слов о нас: удалённый формат,белая зарплата, техника за счёт компании и команда без бюрократии."

	textInterest = "Интересна ли вам эта вакансия?"

	textDeclineAsk = "Жаль! Подскажите, пожалуйста, почему вакансия вам не подошла?"

	textDeclineThanks = "Спасибо за обратную связь! Будем рады видеть вас среди кандидатов в будущем."

	textMainQuestion = "Расскажите, что для вас самое важное в работе?"

	textSalaryQuestion = "Какие у вас зарплатные ожидания? Напишите сумму числом, например 120000."

	textSalaryError = "Не получилось распознать сумму 😕 Напишите, пожалуйста, число, например 120000."

	textInterviewInvite = "Приглашаем вас на интервью с HR: %s. Вам подходит это время?"

	textInterviewAccept = "Отлично, встреча подтверждена! Мы пришлём напоминание накануне. До встречи! 🤝"

	textInterviewReject = "Хорошо. Напишите, когда вам было бы удобно, и мы свяжемся с вами. Если вакансия больше не интересна, нажмите кнопку ниже."

	textRescheduleThanks = "Спасибо! Мы учтём ваши пожелания и свяжемся с вами."

	textNeverAsk = "Жаль это слышать. Подскажите, пожалуйста, почему вы передумали?"

	textRefusalThanks = "Спасибо за честный ответ! Удачи в поиске."

	textAcceptNotice = "Поздравляем! 🎉 По итогам интервью мы готовы сделать вам предложение. HR свяжется с вами с деталями."

	textRejectNotice = "К сожалению, по итогам рассмотрения мы не готовы продолжить. Спасибо за уделённое время и удачи в поиске!"

	textFinalReasonAsk = "Введите причину окончательного отказа кандидату:"

	textEvaluateUsage = "Использование: /evaluate <ID кандидата>"

	textEvaluatePrompt = "🔍 Пора принять решение по кандидату с ID %d. Выберите одно из действий ниже:"

	textAcceptAck = "✅ Кандидат %d получил уведомление о приеме."

	textRejectAck = "❌ Кандидату %d отправлено уведомление об отказе."

	textExportCaption = "Вот ваш файл аналитики 📊"

	textExportMissing = "Файл аналитики не найден 😕"

	textPressStart = "Чтобы начать, отправьте /start"
)

// Button labels.
const (
	labelShowVacancies = "🔍 Активные вакансии"
	labelApply         = "👉 Откликнуться"
	labelYes           = "✅ Да"
	labelNo            = "❌ Нет"
	labelNever         = "Никогда"
	labelAccept        = "✅ Принят"
	labelReject        = "❌ Непринят"
)

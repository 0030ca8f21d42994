package telegram

const (
	cmdReport      = "/otchet"
	cmdReportAlias = "/report"
	cmdChatID      = "/chatid"
	cmdNetdiag     = "/netdiag"
	cmdStart       = "/start"
	cmdHelp        = "/help"
)

const (
	msgDenied        = "Недостаточно прав для выполнения команды."
	msgReportFailed  = "Не удалось сформировать отчет. Проверьте логи сервиса."
	msgRateLimited   = "Слишком много запросов. Попробуйте позже."
	msgNetdiagStart  = "Запускаю сетевую диагностику..."
	msgChatIDPattern = "Chat ID: %d"
	msgHelp          = "Еженедельный отчет по задачам.\n\n" +
		"/otchet - отправить отчет в этот чат\n" +
		"/chatid - показать ID чата\n" +
		"/netdiag - проверить доступ к Telegram API"
)

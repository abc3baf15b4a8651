package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconDraft = "\uf15c"     // nf-fa-file_text
	IconScale = "\U000F0A2F" // nf-md-scale_balance
	IconCheck = "\uf00c"     // nf-fa-check
)

// Notification icons
var (
	IconNotifyInfo    = "\uf05a" // nf-fa-info_circle
	IconNotifyWarning = "\uf071" // nf-fa-warning
	IconNotifyError   = "\uf057" // nf-fa-times_circle
)

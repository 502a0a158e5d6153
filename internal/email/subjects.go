package email

const (
	subjectQuoteApprovedFmt     = "Your quote %q has been approved"
	subjectQuoteRejectedFmt     = "Your quote %q has been rejected"
	subjectAnalysisCompletedFmt = "Photo analysis finished for %q"
)

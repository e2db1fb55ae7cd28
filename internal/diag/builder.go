package diag

func New(sev Severity, code Code, primary Subject, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
		Notes:    nil,
		Hints:    nil,
	}
}

func NewError(code Code, primary Subject, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary Subject, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func (d Diagnostic) WithNote(subject Subject, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Subject: subject, Msg: msg})
	return d
}

func (d Diagnostic) WithHint(title, replaceWith string) Diagnostic {
	d.Hints = append(d.Hints, Hint{Title: title, ReplaceWith: replaceWith})
	return d
}

// Package smtp отправляет письма-напоминания о намазах через внешний
// SMTP-сервер с обязательным STARTTLS.
package smtp

import "io"

// Session — установленная SMTP-сессия для отправки одного письма-напоминания.
// Закрывается вызывающей стороной после Quit либо Close.
type Session interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Mailer открывает SMTP-сессии и знает адрес отправителя напоминаний.
type Mailer interface {
	Connect() (Session, error)
	GetSMTPUser() string
}

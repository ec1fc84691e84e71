package analytics

import (
	"fmt"
	"time"
)

var shortMonths = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

var longMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// ShortMonthLabel formats t as "mar/24".
func ShortMonthLabel(t time.Time) string {
	return fmt.Sprintf("%s/%02d", shortMonths[t.Month()-1], t.Year()%100)
}

// LongMonthLabel formats t as "março, 2024".
func LongMonthLabel(t time.Time) string {
	return fmt.Sprintf("%s, %d", longMonths[t.Month()-1], t.Year())
}

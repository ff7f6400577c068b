package helpers

import "time"

// Calendar selects which calendar a date is expressed in when names are
// looked up.
type Calendar int

const (
	CalendarBikram Calendar = iota
	CalendarGregorian
)

var (
	gregorianMonths = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	gregorianMonthsAbbr = [12]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}
	gregorianMonthsDevanagari = [12]string{
		"जनवरी", "फेब्रुअरी", "मार्च", "अप्रिल", "मे", "जुन",
		"जुलाई", "अगस्ट", "सेप्टेम्बर", "अक्टोबर", "नोभेम्बर", "डिसेम्बर",
	}

	bikramMonths = [12]string{
		"Baisakh", "Jestha", "Ashadh", "Shrawan", "Bhadra", "Ashwin",
		"Kartik", "Mangsir", "Poush", "Magh", "Falgun", "Chaitra",
	}
	bikramMonthsAbbr = [12]string{
		"Bai", "Jes", "Asa", "Shr", "Bha", "Asw", "Kar", "Man", "Pou", "Mag", "Fal", "Cha",
	}
	bikramMonthsDevanagari = [12]string{
		"बैशाख", "जेष्ठ", "आषाढ", "श्रावण", "भाद्रपद", "आश्विन",
		"कार्तिक", "मङ्सिर", "पौष", "माघ", "फाल्गुन", "चैत्र",
	}
	bikramMonthsDevanagariAbbr = [12]string{
		"बै.", "जे.", "आ.", "श्रा.", "भा.", "आ.", "का.", "मं.", "पौ.", "मा.", "फा.", "चै.",
	}

	englishWeekdays     = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	englishWeekdaysAbbr = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

	romanizedWeekdays     = [7]string{"Ravivar", "Somvar", "Mangalvar", "Budhvar", "Brihaspativar", "Shukravar", "Shanivar"}
	romanizedWeekdaysAbbr = [7]string{"Ravi", "Som", "Mangal", "Budh", "Brihas", "Shukra", "Shani"}

	nepaliWeekdays     = [7]string{"आइतबार", "सोमबार", "मङ्गलबार", "बुधबार", "बिहीबार", "शुक्रबार", "शनिबार"}
	nepaliWeekdaysAbbr = [7]string{"आइत", "सोम", "मङ्गल", "बुध", "बिही", "शुक्र", "शनि"}
)

// MonthName returns the full month name. Out of range months yield "".
func MonthName(month int, cal Calendar, unicode bool) string {
	if month < 1 || month > 12 {
		return ""
	}
	switch {
	case cal == CalendarGregorian && unicode:
		return gregorianMonthsDevanagari[month-1]
	case cal == CalendarGregorian:
		return gregorianMonths[month-1]
	case unicode:
		return bikramMonthsDevanagari[month-1]
	default:
		return bikramMonths[month-1]
	}
}

// MonthNameAbbr returns the abbreviated month name. Gregorian abbreviations
// have no Devanagari form.
func MonthNameAbbr(month int, cal Calendar, unicode bool) string {
	if month < 1 || month > 12 {
		return ""
	}
	switch {
	case cal == CalendarGregorian:
		return gregorianMonthsAbbr[month-1]
	case unicode:
		return bikramMonthsDevanagariAbbr[month-1]
	default:
		return bikramMonthsAbbr[month-1]
	}
}

// WeekdayName returns the weekday name. Unicode output is always Nepali;
// otherwise Gregorian dates get English names and BS dates romanized ones.
func WeekdayName(wd time.Weekday, cal Calendar, unicode bool) string {
	switch {
	case unicode:
		return nepaliWeekdays[wd]
	case cal == CalendarGregorian:
		return englishWeekdays[wd]
	default:
		return romanizedWeekdays[wd]
	}
}

// WeekdayNameAbbr is the abbreviated form of WeekdayName.
func WeekdayNameAbbr(wd time.Weekday, cal Calendar, unicode bool) string {
	switch {
	case unicode:
		return nepaliWeekdaysAbbr[wd]
	case cal == CalendarGregorian:
		return englishWeekdaysAbbr[wd]
	default:
		return romanizedWeekdaysAbbr[wd]
	}
}

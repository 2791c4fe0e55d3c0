package portfolio

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Untitled is used when nothing can be derived from a filename.
const Untitled = "Untitled Event"

type eventPattern struct {
	keyword string
	label   string
}

// eventPatterns maps filename keywords to event names, longest keyword first.
var eventPatterns = sortPatterns([]eventPattern{
	// corporate
	{"jabergamo", "JA Finals 2025"},
	{"mday", "Marconi's Day"},
	{"microsoft", "Microsoft Event"},
	{"salone", "Salone Aziendale"},
	{"techtint", "Tech Tint Event"},
	{"aziendale", "Corporate Event"},
	{"hq", "Headquarters Session"},
	{"lhq", "Low Quality Session"},
	{"cbg", "Comic Book Galaxy Convention"},
	{"sgt", "Salone del Giocattolo"},
	{"gardacon", "GardaCon Convention"},

	// cosplay events and people
	{"comofun", "ComoFun Convention"},
	{"akiraflame", "Akira Flame Cosplay Session"},
	{"brandy", "Brandy Cosplay Portfolio"},
	{"celine", "Celine Cosplay Session"},
	{"isa", "Isa Character Study"},
	{"nibbo", "Nibbo Cosplay Collection"},
	{"br4ndy", "Brandy Cosplay Series"},
	{"cos", "Cosplay Photography"},
})

func sortPatterns(ps []eventPattern) []eventPattern {
	sort.SliceStable(ps, func(i, j int) bool {
		return len(ps[i].keyword) > len(ps[j].keyword)
	})
	return ps
}

var (
	datePrefixRe     = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})`)
	timeRe           = regexp.MustCompile(`(\d{2})(\d{2})(\d{2})`)
	seqSuffixRe      = regexp.MustCompile(`-(\d+)$`)
	dateTimePrefixRe = regexp.MustCompile(`^(\d{8})-(\d{6})-`)
	qualityRe        = regexp.MustCompile(`-lhq|-hq|-lhq$|-hq$`)
	yearSuffixRe     = regexp.MustCompile(`-(\d{4})$`)
	separatorsRe     = regexp.MustCompile(`[-_]+`)
	wordStartRe      = regexp.MustCompile(`\b\w`)
	conventionRe     = regexp.MustCompile(`(?i)con|galaxy|salone`)
)

// titleDate is how a filename date appears in a title, e.g. "Jan 5, 2024".
const titleDate = "Jan 2, 2006"

// stem strips the extension from a file name. Dotfiles keep their name.
func stem(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

func upperWords(s string) string {
	return wordStartRe.ReplaceAllStringFunc(s, strings.ToUpper)
}

// TitleCase turns a slug such as "comic-con_2024" into "Comic Con 2024".
func TitleCase(slug string) string {
	return strings.TrimSpace(upperWords(separatorsRe.ReplaceAllString(slug, " ")))
}

// replaceFirst replaces only the leftmost match of re.
func replaceFirst(re *regexp.Regexp, s string, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}

// InferTitle derives a human-readable event title from an image or folder name.
func InferTitle(filename string, category string) string {
	name := strings.ToLower(stem(filename))

	dateStr := ""
	if m := datePrefixRe.FindString(name); m != "" {
		if t, err := time.Parse("20060102", m); err == nil {
			dateStr = t.Format(titleDate)
		}
	}

	timeStr := ""
	if dateStr == "" {
		if m := timeRe.FindStringSubmatch(name); m != nil {
			timeStr = m[1] + ":" + m[2]
		}
	}

	for _, p := range eventPatterns {
		if !strings.Contains(name, p.keyword) {
			continue
		}

		title := p.label
		if dateStr != "" {
			title += " - " + dateStr
		} else if timeStr != "" {
			title += " at " + timeStr
		}

		// skip a trailing year that is already part of the label
		if m := seqSuffixRe.FindStringSubmatch(name); m != nil {
			seq := m[1]
			if !(len(seq) == 4 && strings.Contains(title, seq)) {
				title += " " + seq
			}
		}
		return title
	}

	smart := dateTimePrefixRe.ReplaceAllString(name, "")
	smart = replaceFirst(qualityRe, smart, "")
	smart = yearSuffixRe.ReplaceAllString(smart, "")
	smart = strings.TrimSpace(upperWords(strings.ReplaceAll(smart, "-", " ")))

	if category == "cosplay" && smart != "" {
		parts := strings.Split(smart, " ")
		if len(parts) >= 2 {
			rest := strings.Join(parts[1:], " ")
			lead := parts[0] + " Cosplay"
			for _, p := range parts {
				if conventionRe.MatchString(p) {
					lead = p + " Convention"
					break
				}
			}
			smart = lead + " - " + rest
		}
	}

	if smart != "" {
		if dateStr != "" {
			return smart + " - " + dateStr
		}
		return smart
	}

	if t := TitleCase(name); t != "" {
		return t
	}
	return Untitled
}

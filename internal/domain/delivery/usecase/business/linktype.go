package business

import "strings"

// Link labels shown to users
const (
	LabelYouTube   = "YouTube Video"
	LabelDrive     = "Google Drive"
	LabelTelegram  = "Telegram Link"
	LabelInstagram = "Instagram"
	LabelFacebook  = "Facebook"
	LabelTwitter   = "Twitter/X"
	LabelVideoFile = "Video File"
	LabelPDF       = "PDF Document"
	LabelExternal  = "External Link"
)

type linkRule struct {
	label   string
	needles []string
}

// Rules are checked in order, the first match wins
var linkRules = []linkRule{
	{LabelYouTube, []string{"youtube.com", "youtu.be"}},
	{LabelDrive, []string{"drive.google.com"}},
	{LabelTelegram, []string{"t.me", "telegram"}},
	{LabelInstagram, []string{"instagram.com"}},
	{LabelFacebook, []string{"facebook.com", "fb.com"}},
	{LabelTwitter, []string{"twitter.com", "x.com"}},
	{LabelVideoFile, []string{".mp4", ".mkv", ".avi"}},
	{LabelPDF, []string{".pdf"}},
}

// ClassifyLink returns a human readable label for a URL
func ClassifyLink(link string) string {
	lower := strings.ToLower(link)
	for _, rule := range linkRules {
		for _, needle := range rule.needles {
			if strings.Contains(lower, needle) {
				return rule.label
			}
		}
	}
	return LabelExternal
}

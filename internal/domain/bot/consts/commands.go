// Package consts contains constants for the bot domain
package consts

// Command represents a bot command
type Command struct {
	Name        string
	Description string
}

// User commands
var (
	CommandStart = Command{Name: "start", Description: "Start the bot"}
	CommandHelp  = Command{Name: "help", Description: "How to get content"}
)

// Admin commands
var (
	CommandAdmin          = Command{Name: "admin", Description: "Admin panel"}
	CommandAddChannel     = Command{Name: "addchannel", Description: "Add a required channel"}
	CommandRemoveChannel  = Command{Name: "removechannel", Description: "Remove a required channel"}
	CommandEnableChannel  = Command{Name: "enablechannel", Description: "Require a channel again"}
	CommandDisableChannel = Command{Name: "disablechannel", Description: "Stop requiring a channel"}
	CommandListChannels   = Command{Name: "listchannels", Description: "List required channels"}
	CommandStats          = Command{Name: "stats", Description: "Show statistics"}
	CommandDelContent     = Command{Name: "delcontent", Description: "Delete content by ID"}
	CommandTestContent    = Command{Name: "testcontent", Description: "Register test content"}
)

// AllCommands contains the commands shown in the user menu
var AllCommands = []Command{
	CommandStart,
	CommandHelp,
}

// AdminCommands contains the commands shown in the admin's menu
var AdminCommands = []Command{
	CommandStart,
	CommandHelp,
	CommandAdmin,
	CommandAddChannel,
	CommandRemoveChannel,
	CommandEnableChannel,
	CommandDisableChannel,
	CommandListChannels,
	CommandStats,
	CommandDelContent,
	CommandTestContent,
}

// Deep link and callback payloads
const (
	DeepLinkContentPrefix   = "content_"
	CallbackCheckMembership = "check_membership"
	CallbackHowToUse        = "how_to_use"
	CallbackAbout           = "about"
	CallbackBackToStart     = "back_to_start"
	CallbackAdminPrefix     = "admin_"
	CallbackSeparator       = ":"
)

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Each setting is taken from the first source that provides it:

 1. command-line flag
 2. environment variable (a .env file is loaded first, without overriding)
 3. YAML config file (--config or CONFIG_PATH)
 4. built-in default

# Settings

	Flag              Env            YAML                      Default
	-p, --port        PORT           port                      3318
	-d, --database-url DATABASE_URL  databaseUrl               topic-vote.db (sqlite only)
	-t, --database-type DATABASE_TYPE databaseType             sqlite
	--bot-token       BOT_TOKEN      botApiToken               (required)
	--guild           GUILD_ID       guildId                   global commands
	--admins          ADMIN_IDS      adminIds                  (required)
	--banned          BANNED_IDS     bannedUsers               none
	--notify-day      NOTIFY_DAY     votes.notifyToVoteOnDay   5 (Saturday; 0 = Monday)
	--notify-time     NOTIFY_TIME    votes.notifyToVoteOnTime  10:00

List values are comma-separated in flags and environment variables.

# Example config.yaml

	botApiToken: "..."
	adminIds: ["123456789012345678"]
	bannedUsers: []
	votes:
	  notifyToVoteOnDay: 5
	  notifyToVoteOnTime: "10:00"
*/
package cliparse

package extract

// X.com DOM selector cascades.
// These are isolated here because X changes their DOM frequently - update
// these when extraction breaks. Each list is ordered most-specific first;
// the first selector that matches anything wins, so speculative fallbacks
// belong at the end.

// Post containers.
var (
	postArticle = []string{
		`article[data-testid="tweet"]`,
		`article[role="article"]`,
		`div[data-testid="cellInnerDiv"] article`,
	}

	statusLink = []string{
		`a[href*="/status/"]:has(time)`,
		`a[href*="/status/"]`,
	}
)

// Author.
var (
	authorContainer = []string{
		`[data-testid="User-Name"]`,
		`[data-testid="User-Names"]`,
		`div[data-testid="Tweet-User-Avatar"] ~ div`,
	}

	displayNameNode = []string{
		`[data-testid="User-Name"] div[dir="ltr"] > span span`,
		`[data-testid="User-Name"] span span`,
		`[data-testid="User-Name"] span`,
	}

	handleNode = []string{
		`[data-testid="User-Name"] a[href^="/"][role="link"]`,
		`[data-testid="User-Name"] a[href^="/"]`,
		`a[href^="/"][role="link"]`,
	}

	avatarImage = []string{
		`[data-testid="Tweet-User-Avatar"] img`,
		`img[src*="profile_images"]`,
	}

	// Last-resort author scan: any short text-bearing leaf.
	genericTextLeaf = []string{
		`span`,
		`div[dir="ltr"]`,
	}
)

// Content.
var (
	contentContainer = []string{
		`[data-testid="tweetText"]`,
		`div[lang][dir]`,
		`div[lang]`,
	}
)

// Timestamp.
var (
	timeNode = []string{
		`a[href*="/status/"] time[datetime]`,
		`time[datetime]`,
		`time`,
	}
)

// Engagement counters.
var (
	replyCounter = []string{
		`[data-testid="reply"]`,
		`[aria-label*="repl" i]`,
	}
	repostCounter = []string{
		`[data-testid="retweet"]`,
		`[data-testid="repost"]`,
		`[aria-label*="repost" i]`,
	}
	likeCounter = []string{
		`[data-testid="like"]`,
		`[data-testid="unlike"]`,
		`[aria-label*="like" i]`,
	}
)

// Media.
var (
	imageNode = []string{
		`[data-testid="tweetPhoto"] img`,
		`img[src*="pbs.twimg.com/media"]`,
	}
	videoNode = []string{
		`[data-testid="videoPlayer"] video`,
		`[data-testid="videoComponent"] video`,
		`video`,
	}
	animatedNode = []string{
		`video[src*="tweet_video"]`,
		`[data-testid="gifPlayer"] video`,
	}
)

// Quoted post: a nested link-role container that itself holds both a text
// node and an author node. That structural signature distinguishes an
// embedded quote from reply context.
var (
	quotedContainer = []string{
		`div[role="link"][tabindex]`,
		`div[role="link"]`,
	}
)

// avatarURLDenylist excludes profile imagery from the media set by URL
// substring.
var avatarURLDenylist = []string{
	"profile_images",
	"profile_banners",
	"emoji/v2",
	"hashflags",
}

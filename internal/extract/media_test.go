package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unspool/unspool/internal/types"
)

func TestUpgradeImageURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"small variant upgraded",
			"https://pbs.twimg.com/media/Abc123?format=jpg&name=small",
			"https://pbs.twimg.com/media/Abc123?format=jpg&name=orig",
		},
		{
			"declared format preserved",
			"https://pbs.twimg.com/media/Abc123?format=png&name=900x900",
			"https://pbs.twimg.com/media/Abc123?format=png&name=orig",
		},
		{
			"bare media url gains parameters",
			"https://pbs.twimg.com/media/Abc123",
			"https://pbs.twimg.com/media/Abc123?format=jpg&name=orig",
		},
		{
			"non-media host untouched",
			"https://video.twimg.com/ext_tw_video/1/pu/vid/720x900/clip.mp4",
			"https://video.twimg.com/ext_tw_video/1/pu/vid/720x900/clip.mp4",
		},
		{
			"non-media path untouched",
			"https://pbs.twimg.com/profile_images/99/me.jpg",
			"https://pbs.twimg.com/profile_images/99/me.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UpgradeImageURL(tt.in))
		})
	}
}

func TestExtractMediaKindsAndDedup(t *testing.T) {
	const fixture = `
	<article data-testid="tweet">
	  <div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/One?name=small" alt="first"></div>
	  <div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/One?name=small" alt="first again"></div>
	  <div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/Two?name=small" alt="second"></div>
	  <div data-testid="videoPlayer">
	    <video src="https://video.twimg.com/ext_tw_video/9/vid.mp4" poster="https://pbs.twimg.com/ext_tw_video_thumb/9/img.jpg"></video>
	  </div>
	  <video src="https://video.twimg.com/tweet_video/Gif1.mp4" poster="https://pbs.twimg.com/tweet_video_thumb/Gif1.jpg"></video>
	</article>`

	e := newTestExtractor(t, "")
	refs := e.extractMedia(firstArticle(t, fixture), nil)
	require.Len(t, refs, 4)

	byKind := map[types.MediaKind]int{}
	for _, r := range refs {
		byKind[r.Kind]++
	}
	assert.Equal(t, 2, byKind[types.MediaImage], "duplicate image suppressed")
	assert.Equal(t, 1, byKind[types.MediaVideo])
	assert.Equal(t, 1, byKind[types.MediaAnimatedImage])
}

func TestExtractMediaExcludesAvatars(t *testing.T) {
	const fixture = `
	<article data-testid="tweet">
	  <img src="https://pbs.twimg.com/profile_images/42/ada.jpg" alt="avatar">
	  <img src="https://pbs.twimg.com/media/Real?name=small" alt="real">
	</article>`

	e := newTestExtractor(t, "")
	refs := e.extractMedia(firstArticle(t, fixture), nil)
	require.Len(t, refs, 1)
	assert.Equal(t, "https://pbs.twimg.com/media/Real?format=jpg&name=orig", refs[0].URL)
}

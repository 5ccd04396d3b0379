package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/strip/internal/comic"
)

func TestRender_SetsTitleImageAndAlt(t *testing.T) {
	c := comic.Comic{Num: 42, Title: "T", Img: "http://x/i.png", Alt: "A"}

	s := Render(ShowLoading(Initial()), c)

	assert.Equal(t, "T", s.Title)
	assert.Equal(t, "http://x/i.png", s.ImageURL)
	assert.Equal(t, "A", s.Alt)
	assert.Equal(t, 42, s.Num)
	assert.False(t, s.Loading)
	require.NotNil(t, s.Comic)
	assert.Equal(t, c, *s.Comic)
}

func TestRender_MissingAltIsEmpty(t *testing.T) {
	prev := Render(Initial(), comic.Comic{Num: 1, Title: "one", Img: "a", Alt: "old alt"})
	s := Render(prev, comic.Comic{Num: 2, Title: "two", Img: "b"})
	assert.Empty(t, s.Alt)
}

func TestRender_CopiesComic(t *testing.T) {
	c := comic.Comic{Num: 5, Title: "five", Img: "x"}
	s := Render(Initial(), c)
	c.Title = "changed"
	assert.Equal(t, "five", s.Comic.Title)
}

func TestShowError_KeepsComicAndClearsLoading(t *testing.T) {
	shown := Render(Initial(), comic.Comic{Num: 9, Title: "nine", Img: "n.png"})

	s := ShowError(ShowLoading(shown), "")

	assert.Equal(t, GenericError, s.Error)
	assert.False(t, s.Loading)
	assert.Equal(t, "nine", s.Title)
	assert.Equal(t, "n.png", s.ImageURL)
	assert.Equal(t, 9, s.Num)
}

func TestRender_ClearsPreviousError(t *testing.T) {
	s := ShowError(Initial(), "boom")
	s = ShowFormError(s, "bad id")
	s = Render(s, comic.Comic{Num: 1, Title: "one", Img: "a"})
	assert.Empty(t, s.Error)
	assert.Empty(t, s.FormErr)
}

func TestClear_ResetsToPlaceholder(t *testing.T) {
	s := Clear(Render(Initial(), comic.Comic{Num: 3, Title: "three", Img: "t.png", Alt: "x"}))

	assert.Equal(t, Placeholder, s.Title)
	assert.Empty(t, s.ImageURL)
	assert.Empty(t, s.Alt)
	assert.Nil(t, s.Comic)
	assert.Zero(t, s.Num)
}

func TestLoadingToggles(t *testing.T) {
	s := ShowLoading(Initial())
	assert.True(t, s.Loading)
	assert.False(t, HideLoading(s).Loading)
}

func TestWithCursor_FlagsPeek(t *testing.T) {
	s := Render(Initial(), comic.Comic{Num: 4, Title: "four", Img: "f"})
	assert.False(t, WithCursor(s, 4, 10).Peeking)
	assert.True(t, WithCursor(s, 9, 10).Peeking)
	assert.False(t, WithCursor(Initial(), 9, 10).Peeking)
}

func TestTextPresenter_SkipsLoadingAndFormats(t *testing.T) {
	var buf bytes.Buffer
	p := NewTextPresenter(&buf)

	p.Present(ShowLoading(Initial()))
	assert.Empty(t, buf.String())

	p.Present(Render(Initial(), comic.Comic{Num: 42, Title: "T", Img: "http://x/i.png", Alt: "A"}))
	assert.Equal(t, "#42 T\nimage: http://x/i.png\nalt:   A\n", buf.String())

	buf.Reset()
	p.Present(ShowError(Initial(), ""))
	assert.Equal(t, "error: "+GenericError+"\n", buf.String())
}

package project

// Kind names a content block variant. Values are the interchange "type".
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindCode  Kind = "code"
)

// Source selects where a media block gets its content.
type Source string

const (
	SourceURL     Source = "url"
	SourceUpload  Source = "upload"
	SourceYouTube Source = "youtube"
	SourceMP4     Source = "mp4"
)

// Upload is an in-memory file attached to a media block.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
	// Pixel dimensions, images only.
	Width  int
	Height int
}

// Size returns the payload length in bytes.
func (u *Upload) Size() int { return len(u.Data) }

// Block is one entry in the ordered content list.
type Block interface {
	BlockID() string
	Kind() Kind
	clone() Block
}

// Media is the shared source state of image and video blocks.
type Media struct {
	Source Source
	// Either an absolute URL or a temporary object reference in upload mode.
	URL    string
	Upload *Upload
	// Last attached filename; kept across interchange so a file can be
	// re-attached by name.
	FileName string
}

func (m *Media) media() *Media { return m }

// reset clears everything a source switch invalidates.
func (m *Media) reset(src Source) {
	m.Source = src
	m.URL = ""
	m.Upload = nil
	m.FileName = ""
}

type mediaBlock interface {
	Block
	media() *Media
}

type TextBlock struct {
	ID      string
	Content string
}

func (b *TextBlock) BlockID() string { return b.ID }
func (b *TextBlock) Kind() Kind      { return KindText }
func (b *TextBlock) clone() Block    { c := *b; return &c }

type ImageBlock struct {
	ID string
	Media
	Alt     string
	Caption string
}

func (b *ImageBlock) BlockID() string { return b.ID }
func (b *ImageBlock) Kind() Kind      { return KindImage }
func (b *ImageBlock) clone() Block    { c := *b; return &c }

type VideoBlock struct {
	ID string
	Media
	Caption string
}

func (b *VideoBlock) BlockID() string { return b.ID }
func (b *VideoBlock) Kind() Kind      { return KindVideo }
func (b *VideoBlock) clone() Block    { c := *b; return &c }

type CodeBlock struct {
	ID          string
	Language    string
	Code        string
	Description string
}

func (b *CodeBlock) BlockID() string { return b.ID }
func (b *CodeBlock) Kind() Kind      { return KindCode }
func (b *CodeBlock) clone() Block    { c := *b; return &c }

// ValidKind reports whether k names a known block variant.
func ValidKind(k Kind) bool {
	switch k {
	case KindText, KindImage, KindVideo, KindCode:
		return true
	}
	return false
}

// ValidSource reports whether src is allowed for blocks of kind k.
func ValidSource(k Kind, src Source) bool {
	switch k {
	case KindImage:
		return src == SourceURL || src == SourceUpload
	case KindVideo:
		return src == SourceYouTube || src == SourceMP4 || src == SourceUpload
	}
	return false
}

// NewBlock returns an empty block of kind k with the given id. Image blocks
// start in url mode and video blocks in youtube mode.
func NewBlock(k Kind, id string) (Block, error) {
	switch k {
	case KindText:
		return &TextBlock{ID: id}, nil
	case KindImage:
		return &ImageBlock{ID: id, Media: Media{Source: SourceURL}}, nil
	case KindVideo:
		return &VideoBlock{ID: id, Media: Media{Source: SourceYouTube}}, nil
	case KindCode:
		return &CodeBlock{ID: id}, nil
	}
	return nil, ErrUnknownKind
}

// MediaOf returns the media state of an image or video block.
func MediaOf(b Block) (*Media, bool) {
	mb, ok := b.(mediaBlock)
	if !ok {
		return nil, false
	}
	return mb.media(), true
}

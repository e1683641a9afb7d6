package catalog

// File is the top-level structure of posts.yaml
//
//	posts:
//	  - id: 7
//	    title: Autumn Post
//	    slug: autumn-post
//	    status: publish
type File struct {
	Posts []PostEntry `yaml:"posts"`
}

// PostEntry is one post as written in the catalog file
type PostEntry struct {
	ID     int64  `yaml:"id"`
	Title  string `yaml:"title"`
	Slug   string `yaml:"slug,omitempty"`
	Status string `yaml:"status,omitempty"` // defaults to publish
}

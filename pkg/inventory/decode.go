package inventory

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/versioncheck/pkg/constants"
	"github.com/ajxudir/versioncheck/pkg/errors"
	"github.com/ajxudir/versioncheck/pkg/verbose"
)

// DefaultMaxInventorySize is the largest inventory or tracking document accepted (10 MiB).
const DefaultMaxInventorySize int64 = 10 * 1024 * 1024

// Field names used in documents and in InvalidInputError.Field.
const (
	fieldPackages   = "packages"
	fieldFeed       = "release_feed"
	fieldFeedAlias  = "pypi"
	fieldTracking   = "tracking"
	fieldVersions   = "versions"
	fieldRequiredBy = "required_by"
)

// LoadFile reads and decodes an inventory document from path.
//
// It performs the following operations:
//   - Step 1: Rejects files larger than DefaultMaxInventorySize
//   - Step 2: Reads the file
//   - Step 3: Decodes it with Parse
//
// Parameters:
//   - path: Path to a YAML or JSON inventory document
//
// Returns:
//   - *Bundle: The decoded inventory
//   - error: I/O errors, or *errors.InvalidInputError for malformed content
func LoadFile(path string) (*Bundle, error) {
	data, err := readLimited(path)
	if err != nil {
		return nil, err
	}

	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory %s: %w", path, err)
	}

	verbose.InventoryLoaded(path, len(b.Packages), len(b.Tracking.Versions))
	return b, nil
}

// LoadTracking reads a standalone tracking document (versions and required_by).
//
// Parameters:
//   - path: Path to a YAML or JSON tracking document
//
// Returns:
//   - Tracking: The decoded tracking data
//   - error: I/O errors, or *errors.InvalidInputError for malformed content
func LoadTracking(path string) (Tracking, error) {
	data, err := readLimited(path)
	if err != nil {
		return Tracking{}, err
	}

	tr, err := ParseTracking(data)
	if err != nil {
		return Tracking{}, fmt.Errorf("failed to load tracking %s: %w", path, err)
	}

	verbose.Infof("Tracking loaded from %s: %d tracked", path, len(tr.Versions))
	return tr, nil
}

// readLimited reads path after checking it against DefaultMaxInventorySize.
func readLimited(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > DefaultMaxInventorySize {
		return nil, fmt.Errorf("inventory file too large: %d bytes (max %d bytes)", info.Size(), DefaultMaxInventorySize)
	}
	return os.ReadFile(path)
}

// Parse decodes an inventory document.
//
// The document is decoded into a yaml.Node tree rather than Go maps so that
// the order of chain locations and feed labels is preserved. JSON documents
// are accepted since JSON is valid YAML. Unquoted YAML numbers keep their
// literal text ("1.10" stays "1.10").
//
// Parameters:
//   - data: Document bytes; an empty document yields an empty bundle
//
// Returns:
//   - *Bundle: The decoded inventory
//   - error: *errors.InvalidInputError naming the offending package and field
func Parse(data []byte) (*Bundle, error) {
	root, err := documentRoot(data)
	if err != nil {
		return nil, err
	}

	b := NewBundle()
	if root == nil {
		return b, nil
	}

	err = eachPair(root, "", "document", func(key string, value *yaml.Node) error {
		switch key {
		case fieldPackages:
			return decodePackages(value, b)
		case fieldFeed, fieldFeedAlias:
			return decodeFeed(value, b)
		case fieldTracking:
			tr, err := decodeTracking(value)
			if err != nil {
				return err
			}
			b.Tracking = tr
			return nil
		default:
			return errors.NewInvalidInputErrorf("", key, "unknown section")
		}
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

// ParseTracking decodes a standalone tracking document with versions and
// required_by sections.
func ParseTracking(data []byte) (Tracking, error) {
	root, err := documentRoot(data)
	if err != nil {
		return Tracking{}, err
	}
	if root == nil {
		return Tracking{Versions: map[string]Tracked{}, RequiredBy: map[string][]string{}}, nil
	}
	return decodeTracking(root)
}

// documentRoot unmarshals data and returns the top-level mapping, or nil for
// an empty document.
func documentRoot(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewInvalidInputErrorf("", "document", "invalid YAML: %v", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := resolve(doc.Content[0])
	if isNull(root) {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.NewInvalidInputError("", "document", "expected a mapping at the top level")
	}
	return root, nil
}

// decodePackages fills b.Packages from a name -> location -> version mapping.
func decodePackages(node *yaml.Node, b *Bundle) error {
	return eachPair(node, "", fieldPackages, func(name string, value *yaml.Node) error {
		value = resolve(value)
		if value.Kind != yaml.MappingNode {
			return errors.NewInvalidInputError(name, fieldPackages, "configuration chain must be a mapping of location to version")
		}

		chain := make(Chain, 0, len(value.Content)/2)
		err := eachPair(value, name, fieldPackages, func(location string, v *yaml.Node) error {
			version, err := optionalScalar(v, name, fieldPackages)
			if err != nil {
				return err
			}
			chain = append(chain, Pin{Location: location, Version: version})
			return nil
		})
		if err != nil {
			return err
		}

		b.Packages[name] = chain
		return nil
	})
}

// decodeFeed fills b.ReleaseFeed from a name -> label -> version mapping.
func decodeFeed(node *yaml.Node, b *Bundle) error {
	return eachPair(node, "", fieldFeed, func(name string, value *yaml.Node) error {
		value = resolve(value)
		if isNull(value) {
			b.ReleaseFeed[name] = Feed{}
			return nil
		}
		if value.Kind != yaml.MappingNode {
			return errors.NewInvalidInputError(name, fieldFeed, "release feed must be a mapping of label to version")
		}

		feed := make(Feed, 0, len(value.Content)/2)
		err := eachPair(value, name, fieldFeed, func(label string, v *yaml.Node) error {
			version, err := optionalScalar(v, name, fieldFeed)
			if err != nil {
				return err
			}
			feed = append(feed, Release{Label: label, Version: version})
			return nil
		})
		if err != nil {
			return err
		}

		b.ReleaseFeed[name] = feed
		return nil
	})
}

// decodeTracking decodes the versions and required_by sections.
func decodeTracking(node *yaml.Node) (Tracking, error) {
	tr := Tracking{
		Versions:   make(map[string]Tracked),
		RequiredBy: make(map[string][]string),
	}

	err := eachPair(node, "", fieldTracking, func(key string, value *yaml.Node) error {
		switch key {
		case fieldVersions:
			return decodeTrackedVersions(value, tr.Versions)
		case fieldRequiredBy:
			return decodeRequiredBy(value, tr.RequiredBy)
		default:
			return errors.NewInvalidInputErrorf("", fieldTracking+"."+key, "unknown section")
		}
	})
	if err != nil {
		return Tracking{}, err
	}

	return tr, nil
}

// decodeTrackedVersions decodes name -> [version, dev-label] pairs.
func decodeTrackedVersions(node *yaml.Node, out map[string]Tracked) error {
	field := fieldTracking + "." + fieldVersions
	return eachPair(node, "", field, func(name string, value *yaml.Node) error {
		value = resolve(value)
		if value.Kind != yaml.SequenceNode || len(value.Content) != 2 {
			return errors.NewInvalidInputError(name, field, "expected a [version, dev-label] pair")
		}

		version, err := optionalScalar(value.Content[0], name, field)
		if err != nil {
			return err
		}
		if version == "" {
			return errors.NewInvalidInputError(name, field, "checked-out version must not be empty")
		}

		devLabel, err := optionalScalar(value.Content[1], name, field)
		if err != nil {
			return err
		}
		// A boolean marks a dev checkout without a label of its own.
		if flag := resolve(value.Content[1]); flag.Tag == "!!bool" {
			devLabel = ""
			if strings.EqualFold(flag.Value, "true") {
				devLabel = constants.DescriptionDev
			}
		}

		out[name] = Tracked{Version: version, DevLabel: devLabel}
		return nil
	})
}

// decodeRequiredBy decodes name -> [dependent, ...] lists.
func decodeRequiredBy(node *yaml.Node, out map[string][]string) error {
	field := fieldTracking + "." + fieldRequiredBy
	return eachPair(node, "", field, func(name string, value *yaml.Node) error {
		value = resolve(value)
		if isNull(value) {
			return nil
		}
		if value.Kind != yaml.SequenceNode {
			return errors.NewInvalidInputError(name, field, "expected a list of package names")
		}

		deps := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			dep, err := optionalScalar(item, name, field)
			if err != nil {
				return err
			}
			if dep == "" {
				return errors.NewInvalidInputError(name, field, "dependent name must not be empty")
			}
			deps = append(deps, dep)
		}

		out[name] = deps
		return nil
	})
}

// eachPair walks a mapping node in document order and rejects duplicate keys.
// A null node is treated as an empty mapping.
func eachPair(node *yaml.Node, pkg, field string, fn func(key string, value *yaml.Node) error) error {
	node = resolve(node)
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return errors.NewInvalidInputError(pkg, field, "expected a mapping")
	}

	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := resolve(node.Content[i])
		if keyNode.Kind != yaml.ScalarNode || isNull(keyNode) {
			return errors.NewInvalidInputError(pkg, field, fmt.Sprintf("line %d: keys must be strings", keyNode.Line))
		}
		key := keyNode.Value
		if seen[key] {
			return errors.NewInvalidInputErrorf(pkg, field, "duplicate key %q", key)
		}
		seen[key] = true

		if err := fn(key, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// optionalScalar returns the text of a scalar node, or "" for null.
func optionalScalar(node *yaml.Node, pkg, field string) (string, error) {
	node = resolve(node)
	if isNull(node) {
		return "", nil
	}
	if node.Kind != yaml.ScalarNode {
		return "", errors.NewInvalidInputError(pkg, field, fmt.Sprintf("line %d: expected a scalar value", node.Line))
	}
	return node.Value, nil
}

// resolve follows alias nodes to their anchors.
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// isNull reports whether node is absent or an explicit null.
func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

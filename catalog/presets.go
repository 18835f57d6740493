package catalog

// ============================================================
// 🎨 风格分类
// ============================================================

var styleCategories = []StyleCategory{
	{Key: "basic", Name: "基礎", Icon: "⚡", Order: 1},
	{Key: "illustration", Name: "插畫動畫", Icon: "🎨", Order: 2},
	{Key: "manga", Name: "漫畫風格", Icon: "📖", Order: 3},
	{Key: "realistic", Name: "寫實照片", Icon: "📷", Order: 4},
	{Key: "painting", Name: "繪畫風格", Icon: "🖼️", Order: 5},
	{Key: "scifi", Name: "科幻", Icon: "🚀", Order: 6},
	{Key: "digital", Name: "數位風格", Icon: "💻", Order: 7},
}

// ============================================================
// 🖌️ 风格预设
// ============================================================

var stylePresets = []StylePreset{
	{Key: StyleNone, Name: "無風格", Category: "basic", Icon: "⚡", Description: "不附加任何風格片段"},
	{
		Key: "enhance", Name: "通用增強", Category: "basic", Icon: "✨",
		Prompt:   "beautiful composition, balanced lighting, rich details",
		Negative: "cluttered, flat lighting",
	},

	// illustration
	{
		Key: "anime", Name: "動漫風格", Category: "illustration", Icon: "🎭",
		Prompt:   "anime style, anime art, vibrant colors, cel shading",
		Negative: "realistic, photograph, 3d",
	},
	{
		Key: "ghibli", Name: "吉卜力", Category: "illustration", Icon: "🍃",
		Prompt:   "Studio Ghibli style, Hayao Miyazaki, anime, soft colors",
		Negative: "realistic, dark, 3D",
	},
	{
		Key: "disney", Name: "迪士尼動畫", Category: "illustration", Icon: "🏰",
		Prompt:   "disney animation style, expressive characters, bright colors",
		Negative: "realistic, gritty, dark",
	},
	{
		Key: "pixar", Name: "皮克斯 3D", Category: "illustration", Icon: "🧸",
		Prompt:   "pixar style 3d animation, soft lighting, cute characters, subsurface scattering",
		Negative: "photograph, 2d, flat",
	},
	{
		Key: "storybook", Name: "童話繪本", Category: "illustration", Icon: "📚",
		Prompt:   "children's storybook illustration, whimsical, gentle colors, hand drawn",
		Negative: "photograph, horror, dark",
	},
	{
		Key: "flat-illustration", Name: "扁平插畫", Category: "illustration", Icon: "🟦",
		Prompt:   "flat illustration, minimal shapes, bold solid colors, clean vector lines",
		Negative: "photograph, gradient noise, 3d",
	},
	{
		Key: "line-art", Name: "線稿", Category: "illustration", Icon: "✏️",
		Prompt:   "clean line art, monochrome outlines, no shading",
		Negative: "color fill, photograph, blurry",
	},
	{
		Key: "chibi", Name: "Q版", Category: "illustration", Icon: "🍡",
		Prompt:   "chibi style, super deformed, big head, cute proportions",
		Negative: "realistic proportions, photograph",
	},

	// manga
	{
		Key: "manga", Name: "日本漫畫", Category: "manga", Icon: "📖",
		Prompt:   "manga style, japanese comic art, black and white",
		Negative: "color, realistic, photo",
	},
	{
		Key: "shoujo", Name: "少女漫畫", Category: "manga", Icon: "🌸",
		Prompt:   "shoujo manga style, sparkling eyes, flowers, delicate screentone",
		Negative: "gritty, realistic, photo",
	},
	{
		Key: "shonen", Name: "少年漫畫", Category: "manga", Icon: "🔥",
		Prompt:   "shonen manga style, dynamic action lines, bold ink, intense expressions",
		Negative: "soft, pastel, photo",
	},
	{
		Key: "webtoon", Name: "韓式條漫", Category: "manga", Icon: "📱",
		Prompt:   "korean webtoon style, clean digital coloring, soft shading",
		Negative: "traditional media, photo",
	},
	{
		Key: "american-comic", Name: "美式漫畫", Category: "manga", Icon: "💥",
		Prompt:   "american comic book style, bold outlines, halftone dots, dramatic shading",
		Negative: "photograph, soft, anime",
	},
	{
		Key: "manhua", Name: "國漫", Category: "manga", Icon: "🐉",
		Prompt:   "chinese manhua style, xianxia, flowing robes, rich colors",
		Negative: "photograph, western comic",
	},

	// realistic
	{
		Key: "photorealistic", Name: "寫實照片", Category: "realistic", Icon: "📷",
		Prompt:   "photorealistic, 8k uhd, high quality, detailed",
		Negative: "anime, cartoon, illustration",
	},
	{
		Key: "cinematic", Name: "電影感", Category: "realistic", Icon: "🎬",
		Prompt:   "cinematic still, dramatic lighting, anamorphic lens, film grain",
		Negative: "cartoon, flat lighting, illustration",
	},
	{
		Key: "portrait", Name: "人像攝影", Category: "realistic", Icon: "🧑",
		Prompt:   "professional portrait photography, 85mm lens, shallow depth of field, soft studio light",
		Negative: "cartoon, distorted face, illustration",
	},
	{
		Key: "film-noir", Name: "黑色電影", Category: "realistic", Icon: "🕵️",
		Prompt:   "film noir, black and white, high contrast, venetian blind shadows",
		Negative: "colorful, bright, cartoon",
	},
	{
		Key: "analog-film", Name: "底片攝影", Category: "realistic", Icon: "🎞️",
		Prompt:   "analog film photo, kodak portra 400, natural grain, warm tones",
		Negative: "digital look, cartoon, oversharpened",
	},
	{
		Key: "macro", Name: "微距攝影", Category: "realistic", Icon: "🔍",
		Prompt:   "macro photography, extreme close-up, bokeh background, fine texture",
		Negative: "wide shot, cartoon",
	},
	{
		Key: "product", Name: "產品攝影", Category: "realistic", Icon: "📦",
		Prompt:   "commercial product photography, clean background, studio lighting, crisp reflections",
		Negative: "cluttered background, cartoon, low quality",
	},

	// painting
	{
		Key: "oil-painting", Name: "油畫", Category: "painting", Icon: "🖼️",
		Prompt:   "oil painting, canvas texture, visible brushstrokes",
		Negative: "photograph, digital art",
	},
	{
		Key: "watercolor", Name: "水彩畫", Category: "painting", Icon: "💧",
		Prompt:   "watercolor painting, soft colors, paper texture",
		Negative: "photograph, digital",
	},
	{
		Key: "ink-wash", Name: "水墨畫", Category: "painting", Icon: "🖌️",
		Prompt:   "chinese ink wash painting, sumi-e, flowing brush, rice paper",
		Negative: "photograph, vivid colors, 3d",
	},
	{
		Key: "impressionism", Name: "印象派", Category: "painting", Icon: "🌻",
		Prompt:   "impressionist painting, claude monet style, dappled light, loose brushwork",
		Negative: "photograph, sharp lines",
	},
	{
		Key: "ukiyo-e", Name: "浮世繪", Category: "painting", Icon: "🌊",
		Prompt:   "ukiyo-e woodblock print, hokusai style, flat colors, bold outlines",
		Negative: "photograph, 3d, gradient",
	},
	{
		Key: "sketch", Name: "素描", Category: "painting", Icon: "✍️",
		Prompt:   "pencil sketch, graphite shading, hand drawn, paper texture",
		Negative: "color, photograph, digital",
	},
	{
		Key: "pastel", Name: "粉彩畫", Category: "painting", Icon: "🖍️",
		Prompt:   "soft pastel drawing, chalky texture, gentle blending",
		Negative: "photograph, harsh contrast",
	},
	{
		Key: "art-nouveau", Name: "新藝術運動", Category: "painting", Icon: "🌿",
		Prompt:   "art nouveau, alphonse mucha style, ornamental borders, flowing lines",
		Negative: "photograph, minimalism",
	},
	{
		Key: "pop-art", Name: "普普藝術", Category: "painting", Icon: "🥫",
		Prompt:   "pop art, andy warhol style, bold colors, ben-day dots",
		Negative: "photograph, muted colors",
	},
	{
		Key: "van-gogh", Name: "梵谷風格", Category: "painting", Icon: "🌌",
		Prompt:   "van gogh style, swirling brushstrokes, thick impasto, starry night palette",
		Negative: "photograph, smooth",
	},

	// scifi
	{
		Key: "cyberpunk", Name: "賽博朋克", Category: "scifi", Icon: "🌃",
		Prompt:   "cyberpunk style, neon lights, futuristic, sci-fi",
		Negative: "natural, rustic",
	},
	{
		Key: "steampunk", Name: "蒸汽朋克", Category: "scifi", Icon: "⚙️",
		Prompt:   "steampunk, brass gears, victorian machinery, steam",
		Negative: "modern, minimal, neon",
	},
	{
		Key: "space-opera", Name: "太空歌劇", Category: "scifi", Icon: "🪐",
		Prompt:   "epic space opera, starships, nebula, cosmic scale",
		Negative: "medieval, rustic",
	},
	{
		Key: "post-apocalyptic", Name: "末日廢土", Category: "scifi", Icon: "☢️",
		Prompt:   "post-apocalyptic wasteland, ruined city, dust, overgrown",
		Negative: "clean, pristine, cheerful",
	},
	{
		Key: "synthwave", Name: "合成波", Category: "scifi", Icon: "🌅",
		Prompt:   "synthwave, retro 80s, neon grid, purple and pink sunset",
		Negative: "natural colors, daylight",
	},
	{
		Key: "mecha", Name: "機甲", Category: "scifi", Icon: "🤖",
		Prompt:   "giant mecha, detailed mechanical armor, hard surface design",
		Negative: "organic, fantasy",
	},

	// digital
	{
		Key: "pixel-art", Name: "像素藝術", Category: "digital", Icon: "🎮",
		Prompt:   "pixel art, 8-bit, retro gaming style",
		Negative: "high resolution, smooth",
	},
	{
		Key: "3d-render", Name: "3D 渲染", Category: "digital", Icon: "🧊",
		Prompt:   "3d render, octane render, global illumination, physically based materials",
		Negative: "2d, sketch, flat",
	},
	{
		Key: "low-poly", Name: "低多邊形", Category: "digital", Icon: "🔺",
		Prompt:   "low poly 3d art, faceted geometry, flat shaded polygons",
		Negative: "high detail, photograph",
	},
	{
		Key: "isometric", Name: "等距視角", Category: "digital", Icon: "🏙️",
		Prompt:   "isometric view, miniature diorama, clean edges, soft shadows",
		Negative: "perspective distortion, photograph",
	},
	{
		Key: "vaporwave", Name: "蒸汽波", Category: "digital", Icon: "🗿",
		Prompt:   "vaporwave aesthetic, pastel neon, greek statues, glitch elements",
		Negative: "realistic, muted",
	},
	{
		Key: "concept-art", Name: "概念藝術", Category: "digital", Icon: "🗺️",
		Prompt:   "digital concept art, matte painting, epic environment, artstation",
		Negative: "photograph, amateur",
	},
	{
		Key: "fantasy", Name: "奇幻藝術", Category: "digital", Icon: "🧙",
		Prompt:   "high fantasy digital painting, magical atmosphere, glowing runes",
		Negative: "modern, mundane, photograph",
	},
	{
		Key: "glitch", Name: "故障藝術", Category: "digital", Icon: "📺",
		Prompt:   "glitch art, rgb split, data moshing, scan lines",
		Negative: "clean, smooth",
	},
}

// ============================================================
// 🤖 模型
// ============================================================

var models = []ModelDescriptor{
	{ID: "zimage", Name: "Z-Image Turbo ⚡", Category: "zimage", Description: "快速 6B 參數圖像生成", MaxSize: 2048},
	{ID: "flux", Name: "Flux 標準版", Category: "flux", Description: "快速且高質量的圖像生成", MaxSize: 2048},
	{ID: "turbo", Name: "Flux Turbo ⚡", Category: "flux", Description: "超快速圖像生成", MaxSize: 2048},
	{
		ID: "kontext", Name: "Kontext 🎨", Category: "kontext",
		Description: "上下文感知圖像生成（支持圖生圖）", MaxSize: 2048,
		SupportsReferenceImages: true, MaxReferenceImages: 1,
	},
}

// DefaultModel is used when a request leaves the model empty.
const DefaultModel = "zimage"

// ============================================================
// 📐 尺寸预设
// ============================================================

var sizePresets = []SizePreset{
	{Key: "square-1k", Name: "方形 1024x1024", Width: 1024, Height: 1024},
	{Key: "square-1.5k", Name: "方形 1536x1536", Width: 1536, Height: 1536},
	{Key: "square-2k", Name: "方形 2048x2048", Width: 2048, Height: 2048},
	{Key: "portrait-9-16-hd", Name: "豎屏 9:16 HD", Width: 1080, Height: 1920},
	{Key: "landscape-16-9-hd", Name: "橫屏 16:9 HD", Width: 1920, Height: 1080},
	{Key: "instagram-square", Name: "Instagram 方形", Width: 1080, Height: 1080},
	{Key: "wallpaper-fhd", Name: "桌布 Full HD", Width: 1920, Height: 1080},
}

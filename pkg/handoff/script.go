package handoff

// Script is the browser rendition of the handoff flow, served by the
// capture server at /script.js. It mirrors Run: first fragment pair's
// value, one POST, "yippee!" and window close on success, silence
// otherwise.
const Script = `const run = async () => {
    const fragment = window.location.hash.slice(1);
    const token = fragment.split("&")[0].split("=")[1];

    const res = await fetch("/token", {
        method: "POST",
        headers: { "content-type": "application/json" },
        body: JSON.stringify({ token: token }),
    });

    if (res.ok) {
        document.body.innerHTML = "yippee!";
        window.close();
    }
};

run();
`
